package interaction

import (
	"context"
	"sync"
	"time"

	"faculty-hub/models"
	"faculty-hub/services"
)

// CommentPanel drives the expandable comment list under a faculty profile.
// Posting re-fetches the list from the store instead of inserting locally,
// so the displayed list never diverges from the authoritative state.
type CommentPanel struct {
	mu        sync.Mutex
	subjectID string
	store     EngagementService
	identity  IdentityResolver
	timeout   time.Duration
	expanded  bool
	posting   bool
	deleting  bool
	page      *models.CommentPage
}

// SetTimeout overrides the per-call deadline.
func (p *CommentPanel) SetTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d > 0 {
		p.timeout = d
	}
}

// Expanded reports whether the panel is open.
func (p *CommentPanel) Expanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}

// Page returns the last fetched comment page, or nil before the first
// expansion.
func (p *CommentPanel) Page() *models.CommentPage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Expand opens the panel and fetches the comment list.
func (p *CommentPanel) Expand(ctx context.Context) (*models.CommentPage, error) {
	page, err := p.refresh(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.expanded = true
	p.mu.Unlock()

	return page, nil
}

// Collapse closes the panel. The cached page is kept for the next expansion.
func (p *CommentPanel) Collapse() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expanded = false
}

// Refresh re-fetches the comment list from the store.
func (p *CommentPanel) Refresh(ctx context.Context) (*models.CommentPage, error) {
	return p.refresh(ctx)
}

func (p *CommentPanel) refresh(ctx context.Context) (*models.CommentPage, error) {
	p.mu.Lock()
	timeout := p.timeout
	p.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, err := p.store.ListComments(callCtx, p.subjectID, 0)
	if err != nil {
		return nil, mapTimeout(err)
	}

	p.mu.Lock()
	p.page = page
	p.mu.Unlock()

	return page, nil
}

// Post validates and submits a comment, then re-lists from the store. The
// posting guard drops a second submission while one is outstanding, which
// is what prevents duplicate writes of the same body: comment creation is
// not idempotent and is never retried automatically.
func (p *CommentPanel) Post(ctx context.Context, body string) (*models.CommentPage, error) {
	// Validation failures are caught before the guard or any store call.
	if _, err := services.ValidateCommentBody(body); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.posting {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.posting = true
	timeout := p.timeout
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.posting = false
		p.mu.Unlock()
	}()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	actor, err := p.identity.ResolveActor(callCtx)
	if err != nil {
		return nil, err
	}

	if _, err := p.store.AddComment(callCtx, p.subjectID, actor, body); err != nil {
		return nil, mapTimeout(err)
	}

	return p.refresh(ctx)
}

// Delete removes a comment after an explicit confirmation step. Its own
// in-flight guard drops a second confirmed click while the first delete is
// outstanding. On NotFound or NotAuthorized the cached list is left
// unchanged pending a manual Refresh.
func (p *CommentPanel) Delete(ctx context.Context, commentID string, confirmed bool) (*models.CommentPage, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	p.mu.Lock()
	if p.deleting {
		p.mu.Unlock()
		return nil, ErrInFlight
	}
	p.deleting = true
	timeout := p.timeout
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.deleting = false
		p.mu.Unlock()
	}()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	actor, err := p.identity.ResolveActor(callCtx)
	if err != nil {
		return nil, err
	}

	if err := p.store.DeleteComment(callCtx, commentID, actor); err != nil {
		return nil, mapTimeout(err)
	}

	return p.refresh(ctx)
}
