package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"faculty-hub/models"
)

const (
	// MaxCommentLength bounds a comment body, counted in runes.
	MaxCommentLength = 2000

	// DefaultCommentLimit is the page size used when the caller does not ask
	// for one.
	DefaultCommentLimit = 50
)

// ValidateCommentBody trims body and checks the length bounds before any
// store call is made. Returns the trimmed body.
func ValidateCommentBody(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", ErrEmptyBody
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return "", fmt.Errorf("%w: %d characters over the %d limit", ErrBodyTooLong,
			utf8.RuneCountInString(trimmed)-MaxCommentLength, MaxCommentLength)
	}
	return trimmed, nil
}

// EngagementStore is the sole mutator path for the likes, comments and
// follows collections. Every mutation is followed by a fresh count read
// rather than a client-maintained increment.
type EngagementStore struct {
	db *mongo.Database
}

func NewEngagementStore(db *mongo.Database) *EngagementStore {
	return &EngagementStore{db: db}
}

// Like upserts the actor's reaction on a subject, keyed by
// (subject_id, actor_id). A second like from the same actor overwrites the
// reaction kind instead of creating a duplicate. Returns the refreshed
// like count for the subject.
func (s *EngagementStore) Like(ctx context.Context, subjectID string, actor models.Actor, kind models.ReactionKind) (int64, error) {
	if kind == "" || !models.IsValidReaction(kind) {
		kind = models.ReactionLike
	}

	filter := bson.M{"subject_id": subjectID, "actor_id": actor.ActorID}
	update := bson.M{
		"$set": bson.M{
			"reaction":           kind,
			"actor_display_name": actor.DisplayName,
		},
		"$setOnInsert": bson.M{
			"subject_id": subjectID,
			"actor_id":   actor.ActorID,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	result, err := s.db.Collection("likes").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return 0, storeErr(err)
	}

	if result.UpsertedCount > 0 {
		slog.Info("Like recorded",
			"subjectID", subjectID,
			"actorID", actor.ActorID,
			"reaction", kind,
		)
	} else {
		slog.Info("Like reaction updated",
			"subjectID", subjectID,
			"actorID", actor.ActorID,
			"reaction", kind,
		)
	}

	return s.LikeCount(ctx, subjectID)
}

// Unlike removes the actor's like on a subject. Removing an absent like is a
// no-op, not an error. Returns the refreshed like count.
func (s *EngagementStore) Unlike(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	filter := bson.M{"subject_id": subjectID, "actor_id": actor.ActorID}

	if _, err := s.db.Collection("likes").DeleteOne(ctx, filter); err != nil {
		return 0, storeErr(err)
	}

	return s.LikeCount(ctx, subjectID)
}

// HasLiked checks for a like on the (subject_id, actor_id) composite key.
func (s *EngagementStore) HasLiked(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	count, err := s.db.Collection("likes").CountDocuments(ctx, bson.M{
		"subject_id": subjectID,
		"actor_id":   actor.ActorID,
	})
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// AddComment validates and writes a comment. Validation failures happen
// before any store call; comment creation is never retried because it is
// not idempotent.
func (s *EngagementStore) AddComment(ctx context.Context, subjectID string, actor models.Actor, body string) (*models.Comment, error) {
	trimmed, err := ValidateCommentBody(body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &models.Comment{
		SubjectID:        subjectID,
		ActorID:          actor.ActorID,
		ActorDisplayName: actor.DisplayName,
		ActorEmail:       actor.Email,
		Body:             trimmed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	result, err := s.db.Collection("comments").InsertOne(ctx, comment)
	if err != nil {
		return nil, storeErr(err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}

	slog.Info("Comment posted",
		"subjectID", subjectID,
		"actorID", actor.ActorID,
		"commentID", comment.ID.Hex(),
	)

	return comment, nil
}

// ListComments returns up to limit comments for a subject, newest first,
// together with the total count.
func (s *EngagementStore) ListComments(ctx context.Context, subjectID string, limit int64) (*models.CommentPage, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	collection := s.db.Collection("comments")
	filter := bson.M{"subject_id": subjectID}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, storeErr(err)
	}

	return &models.CommentPage{
		Comments:   comments,
		TotalCount: total,
		HasMore:    total > limit,
	}, nil
}

// DeleteComment deletes a comment if and only if the requesting actor is its
// author. The ownership check is repeated in the delete filter so a racing
// owner change cannot slip through between the read and the delete.
func (s *EngagementStore) DeleteComment(ctx context.Context, commentID string, actor models.Actor) error {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		// A malformed id cannot reference an existing comment.
		return fmt.Errorf("%w: comment %q", ErrNotFound, commentID)
	}

	collection := s.db.Collection("comments")

	var comment models.Comment
	err = collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("%w: comment %q", ErrNotFound, commentID)
		}
		return storeErr(err)
	}

	if comment.ActorID != actor.ActorID {
		return fmt.Errorf("%w: comment belongs to another actor", ErrNotAuthorized)
	}

	result, err := collection.DeleteOne(ctx, bson.M{"_id": oid, "actor_id": actor.ActorID})
	if err != nil {
		return storeErr(err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: comment %q", ErrNotFound, commentID)
	}

	slog.Info("Comment deleted",
		"commentID", commentID,
		"actorID", actor.ActorID,
	)

	return nil
}

// Follow upserts a follow record keyed by (subject_id, actor_id).
// Re-following is idempotent. Returns the refreshed follower count.
func (s *EngagementStore) Follow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	filter := bson.M{"subject_id": subjectID, "actor_id": actor.ActorID}
	update := bson.M{
		"$set": bson.M{
			"actor_display_name": actor.DisplayName,
			"actor_email":        actor.Email,
		},
		"$setOnInsert": bson.M{
			"subject_id": subjectID,
			"actor_id":   actor.ActorID,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	result, err := s.db.Collection("follows").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return 0, storeErr(err)
	}

	if result.UpsertedCount > 0 {
		slog.Info("Follow recorded",
			"subjectID", subjectID,
			"actorID", actor.ActorID,
		)
	}

	return s.FollowerCount(ctx, subjectID)
}

// Unfollow removes the actor's follow. A no-op if absent. Returns the
// refreshed follower count.
func (s *EngagementStore) Unfollow(ctx context.Context, subjectID string, actor models.Actor) (int64, error) {
	filter := bson.M{"subject_id": subjectID, "actor_id": actor.ActorID}

	if _, err := s.db.Collection("follows").DeleteOne(ctx, filter); err != nil {
		return 0, storeErr(err)
	}

	return s.FollowerCount(ctx, subjectID)
}

// IsFollowing checks for a follow on the (subject_id, actor_id) composite key.
func (s *EngagementStore) IsFollowing(ctx context.Context, subjectID string, actor models.Actor) (bool, error) {
	count, err := s.db.Collection("follows").CountDocuments(ctx, bson.M{
		"subject_id": subjectID,
		"actor_id":   actor.ActorID,
	})
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// LikeCount returns the number of likes on a subject.
func (s *EngagementStore) LikeCount(ctx context.Context, subjectID string) (int64, error) {
	count, err := s.db.Collection("likes").CountDocuments(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// CommentCount returns the number of comments on a subject.
func (s *EngagementStore) CommentCount(ctx context.Context, subjectID string) (int64, error) {
	count, err := s.db.Collection("comments").CountDocuments(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// FollowerCount returns the number of followers of a subject.
func (s *EngagementStore) FollowerCount(ctx context.Context, subjectID string) (int64, error) {
	count, err := s.db.Collection("follows").CountDocuments(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}
