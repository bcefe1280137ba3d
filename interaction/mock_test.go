package interaction

import (
	"context"

	"faculty-hub/models"
)

// mockStore implements EngagementService with overridable fn fields.
type mockStore struct {
	likeFn         func(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error)
	unlikeFn       func(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	hasLikedFn     func(ctx context.Context, subjectID string, actor models.Actor) (bool, error)
	addCommentFn   func(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error)
	listCommentsFn func(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error)
	deleteFn       func(ctx context.Context, commentID string, actor models.Actor) error
	followFn       func(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	unfollowFn     func(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	isFollowingFn  func(ctx context.Context, subjectID string, actor models.Actor) (bool, error)
}

func (m *mockStore) Like(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error) {
	if m.likeFn != nil {
		return m.likeFn(ctx, subjectID, actor, kind)
	}
	return 0, nil
}

func (m *mockStore) Unlike(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockStore) HasLiked(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	if m.hasLikedFn != nil {
		return m.hasLikedFn(ctx, subjectID, actor)
	}
	return false, nil
}

func (m *mockStore) AddComment(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, subjectID, actor, body)
	}
	return &models.Comment{}, nil
}

func (m *mockStore) ListComments(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, subjectID, limit)
	}
	return &models.CommentPage{Comments: []models.Comment{}}, nil
}

func (m *mockStore) DeleteComment(ctx context.Context, commentID string, actor models.Actor) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, actor)
	}
	return nil
}

func (m *mockStore) Follow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.followFn != nil {
		return m.followFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockStore) Unfollow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockStore) IsFollowing(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, subjectID, actor)
	}
	return false, nil
}

// staticIdentity resolves to a fixed actor, the injected-identity path the
// tests rely on.
type staticIdentity struct {
	actor models.Actor
	err   error
}

func (s *staticIdentity) ResolveActor(ctx context.Context) (models.Actor, error) {
	return s.actor, s.err
}

func ann() *staticIdentity {
	return &staticIdentity{actor: models.Actor{ActorID: "u1", DisplayName: "Ann"}}
}
