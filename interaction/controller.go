package interaction

import (
	"context"

	"faculty-hub/models"
)

// EngagementService is the slice of the engagement store the controllers
// drive.
type EngagementService interface {
	Like(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error)
	Unlike(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	HasLiked(ctx context.Context, subjectID string, actor models.Actor) (bool, error)
	AddComment(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error)
	ListComments(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error)
	DeleteComment(ctx context.Context, commentID string, actor models.Actor) error
	Follow(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	Unfollow(ctx context.Context, subjectID string, actor models.Actor) (int64, error)
	IsFollowing(ctx context.Context, subjectID string, actor models.Actor) (bool, error)
}

// IdentityResolver supplies the acting identity, prompting for a display
// name when needed. It is injected so tests can supply fake identities.
type IdentityResolver interface {
	ResolveActor(ctx context.Context) (models.Actor, error)
}

// Controller wires the engagement affordances of one faculty profile to the
// store client and the identity resolver. Each affordance is independent;
// cross-affordance calls are unordered relative to each other.
type Controller struct {
	subjectID string
	store     EngagementService
	identity  IdentityResolver
}

func NewController(subjectID string, store EngagementService, identity IdentityResolver) *Controller {
	return &Controller{
		subjectID: subjectID,
		store:     store,
		identity:  identity,
	}
}

// LikeToggle builds the like toggle seeded with the given server state.
func (c *Controller) LikeToggle(liked bool, count int64) *Toggle {
	return NewToggle(liked, count,
		func(ctx context.Context) (int64, error) {
			actor, err := c.identity.ResolveActor(ctx)
			if err != nil {
				return 0, err
			}
			return c.store.Like(ctx, c.subjectID, actor, models.ReactionLike)
		},
		func(ctx context.Context) (int64, error) {
			actor, err := c.identity.ResolveActor(ctx)
			if err != nil {
				return 0, err
			}
			return c.store.Unlike(ctx, c.subjectID, actor)
		},
	)
}

// FollowToggle builds the follow toggle seeded with the given server state.
func (c *Controller) FollowToggle(following bool, count int64) *Toggle {
	return NewToggle(following, count,
		func(ctx context.Context) (int64, error) {
			actor, err := c.identity.ResolveActor(ctx)
			if err != nil {
				return 0, err
			}
			return c.store.Follow(ctx, c.subjectID, actor)
		},
		func(ctx context.Context) (int64, error) {
			actor, err := c.identity.ResolveActor(ctx)
			if err != nil {
				return 0, err
			}
			return c.store.Unfollow(ctx, c.subjectID, actor)
		},
	)
}

// CommentPanel builds the comment panel for this subject.
func (c *Controller) CommentPanel() *CommentPanel {
	return &CommentPanel{
		subjectID: c.subjectID,
		store:     c.store,
		identity:  c.identity,
		timeout:   DefaultTimeout,
	}
}
