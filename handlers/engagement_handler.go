package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"faculty-hub/middleware"
	"faculty-hub/models"
	"faculty-hub/services"
)

// EngagementService is the slice of the engagement store the HTTP layer
// drives.
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

// StatsService aggregates per-subject engagement counts.
type StatsService interface {
	GetStats(ctx context.Context, subjectID string) models.SubjectStats
}

type EngagementHandler struct {
	store EngagementService
	stats StatsService
}

func NewEngagementHandler(store EngagementService, stats StatsService) *EngagementHandler {
	return &EngagementHandler{store: store, stats: stats}
}

// RegisterRoutes mounts the engagement endpoints under api.
func (h *EngagementHandler) RegisterRoutes(api fiber.Router) {
	subjects := api.Group("/subjects/:subjectID")

	subjects.Post("/like", h.Like)
	subjects.Delete("/like", h.Unlike)
	subjects.Get("/like", h.HasLiked)

	subjects.Post("/comments", h.AddComment)
	subjects.Get("/comments", h.ListComments)
	subjects.Delete("/comments/:commentID", h.DeleteComment)

	subjects.Post("/follow", h.Follow)
	subjects.Delete("/follow", h.Unfollow)
	subjects.Get("/follow", h.IsFollowing)

	subjects.Get("/stats", h.GetStats)
}

// requestActor resolves the acting identity: an authenticated session always
// wins over the anonymous actor the payload claims. The store-side access
// rules remain the real enforcement point.
func requestActor(c *fiber.Ctx, fallback models.Actor) (models.Actor, bool) {
	if actor, ok := c.Locals(middleware.ActorLocal).(models.Actor); ok && actor.ActorID != "" {
		return actor, true
	}
	if fallback.ActorID == "" || fallback.DisplayName == "" {
		return models.Actor{}, false
	}
	return fallback, true
}

// queryActor resolves the acting identity for read endpoints, where the
// anonymous fallback arrives as query parameters.
func queryActor(c *fiber.Ctx) (models.Actor, bool) {
	return requestActor(c, models.Actor{
		ActorID:     c.Query("actor_id"),
		DisplayName: c.Query("display_name", "anonymous"),
	})
}

// engagementError maps the failure taxonomy onto HTTP statuses, keeping the
// distinct messages intact.
func engagementError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrEmptyBody),
		errors.Is(err, services.ErrBodyTooLong),
		errors.Is(err, services.ErrNoDisplayName):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotAuthorized):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrStoreUnavailable):
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func missingActor(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "An actor_id and display_name are required for anonymous engagement",
	})
}

type likeRequest struct {
	ActorID     string              `json:"actor_id"`
	DisplayName string              `json:"display_name"`
	Email       string              `json:"email"`
	Reaction    models.ReactionKind `json:"reaction"`
}

func (r likeRequest) actor() models.Actor {
	return models.Actor{ActorID: r.ActorID, DisplayName: r.DisplayName, Email: r.Email}
}

func (h *EngagementHandler) Like(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	count, err := h.store.Like(c.Context(), subjectID, actor, req.Reaction)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"liked": true, "like_count": count})
}

func (h *EngagementHandler) Unlike(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		req = likeRequest{}
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	count, err := h.store.Unlike(c.Context(), subjectID, actor)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"liked": false, "like_count": count})
}

func (h *EngagementHandler) HasLiked(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	actor, ok := queryActor(c)
	if !ok {
		return missingActor(c)
	}

	liked, err := h.store.HasLiked(c.Context(), subjectID, actor)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}

type commentRequest struct {
	ActorID     string `json:"actor_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Body        string `json:"body"`
}

func (r commentRequest) actor() models.Actor {
	return models.Actor{ActorID: r.ActorID, DisplayName: r.DisplayName, Email: r.Email}
}

func (h *EngagementHandler) AddComment(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	comment, err := h.store.AddComment(c.Context(), subjectID, actor, req.Body)
	if err != nil {
		return engagementError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *EngagementHandler) ListComments(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	limit, err := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		limit = 0
	}

	page, err := h.store.ListComments(c.Context(), subjectID, limit)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(page)
}

func (h *EngagementHandler) DeleteComment(c *fiber.Ctx) error {
	commentID := c.Params("commentID")

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		req = commentRequest{}
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	if err := h.store.DeleteComment(c.Context(), commentID, actor); err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

func (h *EngagementHandler) Follow(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	count, err := h.store.Follow(c.Context(), subjectID, actor)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"following": true, "follower_count": count})
}

func (h *EngagementHandler) Unfollow(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		req = likeRequest{}
	}

	actor, ok := requestActor(c, req.actor())
	if !ok {
		return missingActor(c)
	}

	count, err := h.store.Unfollow(c.Context(), subjectID, actor)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"following": false, "follower_count": count})
}

func (h *EngagementHandler) IsFollowing(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")

	actor, ok := queryActor(c)
	if !ok {
		return missingActor(c)
	}

	following, err := h.store.IsFollowing(c.Context(), subjectID, actor)
	if err != nil {
		return engagementError(c, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

func (h *EngagementHandler) GetStats(c *fiber.Ctx) error {
	subjectID := c.Params("subjectID")
	return c.JSON(h.stats.GetStats(c.Context(), subjectID))
}
