package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faculty-hub/models"
	"faculty-hub/services"
)

type mockEngagement struct {
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

func (m *mockEngagement) Like(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error) {
	if m.likeFn != nil {
		return m.likeFn(ctx, subjectID, actor, kind)
	}
	return 0, nil
}

func (m *mockEngagement) Unlike(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockEngagement) HasLiked(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	if m.hasLikedFn != nil {
		return m.hasLikedFn(ctx, subjectID, actor)
	}
	return false, nil
}

func (m *mockEngagement) AddComment(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, subjectID, actor, body)
	}
	return &models.Comment{}, nil
}

func (m *mockEngagement) ListComments(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, subjectID, limit)
	}
	return &models.CommentPage{Comments: []models.Comment{}}, nil
}

func (m *mockEngagement) DeleteComment(ctx context.Context, commentID string, actor models.Actor) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, actor)
	}
	return nil
}

func (m *mockEngagement) Follow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.followFn != nil {
		return m.followFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockEngagement) Unfollow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, subjectID, actor)
	}
	return 0, nil
}

func (m *mockEngagement) IsFollowing(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, subjectID, actor)
	}
	return false, nil
}

type mockStats struct {
	statsFn func(ctx context.Context, subjectID string) models.SubjectStats
}

func (m *mockStats) GetStats(ctx context.Context, subjectID string) models.SubjectStats {
	if m.statsFn != nil {
		return m.statsFn(ctx, subjectID)
	}
	return models.SubjectStats{SubjectID: subjectID}
}

func newTestApp(store EngagementService, stats StatsService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	NewEngagementHandler(store, stats).RegisterRoutes(api)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestLikeEndpoint(t *testing.T) {
	store := &mockEngagement{
		likeFn: func(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error) {
			assert.Equal(t, "faculty-42", subjectID)
			assert.Equal(t, "u1", actor.ActorID)
			return 1, nil
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("POST", "/api/subjects/faculty-42/like",
		strings.NewReader(`{"actor_id":"u1","display_name":"Ann"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["like_count"])
}

func TestLikeEndpointRequiresActor(t *testing.T) {
	app := newTestApp(&mockEngagement{}, &mockStats{})

	req := httptest.NewRequest("POST", "/api/subjects/faculty-42/like",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddCommentValidationMapsTo400(t *testing.T) {
	store := &mockEngagement{
		addCommentFn: func(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error) {
			return nil, services.ErrBodyTooLong
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("POST", "/api/subjects/faculty-42/comments",
		strings.NewReader(`{"actor_id":"u1","display_name":"Ann","body":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Contains(t, body["error"], "maximum length")
}

func TestDeleteCommentAuthorizationMapsTo403(t *testing.T) {
	store := &mockEngagement{
		deleteFn: func(ctx context.Context, commentID string, actor models.Actor) error {
			return services.ErrNotAuthorized
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("DELETE", "/api/subjects/faculty-42/comments/abc123",
		strings.NewReader(`{"actor_id":"u2","display_name":"Ben"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteCommentNotFoundMapsTo404(t *testing.T) {
	store := &mockEngagement{
		deleteFn: func(ctx context.Context, commentID string, actor models.Actor) error {
			return services.ErrNotFound
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("DELETE", "/api/subjects/faculty-42/comments/gone",
		strings.NewReader(`{"actor_id":"u1","display_name":"Ann"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	store := &mockEngagement{
		followFn: func(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
			return 0, services.ErrStoreUnavailable
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("POST", "/api/subjects/faculty-42/follow",
		strings.NewReader(`{"actor_id":"u1","display_name":"Ann"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestListCommentsEndpoint(t *testing.T) {
	store := &mockEngagement{
		listCommentsFn: func(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error) {
			assert.Equal(t, int64(10), limit)
			return &models.CommentPage{
				Comments:   []models.Comment{{Body: "Great work!"}},
				TotalCount: 12,
				HasMore:    true,
			}, nil
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("GET", "/api/subjects/faculty-42/comments?limit=10", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(12), body["total_count"])
	assert.Equal(t, true, body["has_more"])
}

func TestStatsEndpoint(t *testing.T) {
	stats := &mockStats{
		statsFn: func(ctx context.Context, subjectID string) models.SubjectStats {
			return models.SubjectStats{
				SubjectID:     subjectID,
				LikeCount:     3,
				CommentCount:  1,
				FollowerCount: 2,
			}
		},
	}
	app := newTestApp(&mockEngagement{}, stats)

	req := httptest.NewRequest("GET", "/api/subjects/faculty-42/stats", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "faculty-42", body["subject_id"])
	assert.Equal(t, float64(3), body["like_count"])
}

func TestHasLikedEndpoint(t *testing.T) {
	store := &mockEngagement{
		hasLikedFn: func(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
			return actor.ActorID == "u1", nil
		},
	}
	app := newTestApp(store, &mockStats{})

	req := httptest.NewRequest("GET", "/api/subjects/faculty-42/like?actor_id=u1", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["liked"])
}
