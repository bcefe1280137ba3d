package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"faculty-hub/models"
)

// SubjectCounter is the slice of the engagement store the aggregator needs.
type SubjectCounter interface {
	LikeCount(ctx context.Context, subjectID string) (int64, error)
	CommentCount(ctx context.Context, subjectID string) (int64, error)
	FollowerCount(ctx context.Context, subjectID string) (int64, error)
}

// StatsAggregator composes the three per-subject count queries. Statistics
// are best-effort and display-only: a failed query degrades its field to
// zero instead of failing the aggregate.
type StatsAggregator struct {
	counter SubjectCounter
}

func NewStatsAggregator(counter SubjectCounter) *StatsAggregator {
	return &StatsAggregator{counter: counter}
}

// GetStats issues the three count queries concurrently and combines the
// results. It never fails outright.
func (a *StatsAggregator) GetStats(ctx context.Context, subjectID string) models.SubjectStats {
	stats := models.SubjectStats{SubjectID: subjectID}

	// Each goroutine swallows its own error so a failing field never
	// cancels the siblings.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := a.counter.LikeCount(gctx, subjectID)
		if err != nil {
			slog.Warn("Like count query failed", "subjectID", subjectID, "error", err)
			return nil
		}
		stats.LikeCount = count
		return nil
	})

	g.Go(func() error {
		count, err := a.counter.CommentCount(gctx, subjectID)
		if err != nil {
			slog.Warn("Comment count query failed", "subjectID", subjectID, "error", err)
			return nil
		}
		stats.CommentCount = count
		return nil
	})

	g.Go(func() error {
		count, err := a.counter.FollowerCount(gctx, subjectID)
		if err != nil {
			slog.Warn("Follower count query failed", "subjectID", subjectID, "error", err)
			return nil
		}
		stats.FollowerCount = count
		return nil
	})

	g.Wait()

	return stats
}
