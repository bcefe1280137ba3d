package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionKind is the closed set of reactions a like can carry.
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionCelebrate  ReactionKind = "celebrate"
	ReactionInsightful ReactionKind = "insightful"
)

// IsValidReaction reports whether kind is one of the known reaction kinds.
func IsValidReaction(kind ReactionKind) bool {
	switch kind {
	case ReactionLike, ReactionCelebrate, ReactionInsightful:
		return true
	}
	return false
}

// Like represents one actor's reaction to a faculty profile.
// At most one record exists per (subject_id, actor_id) pair; reacting again
// overwrites the reaction kind instead of creating a duplicate.
type Like struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID        string             `bson:"subject_id" json:"subject_id"`
	ActorID          string             `bson:"actor_id" json:"actor_id"`
	ActorDisplayName string             `bson:"actor_display_name" json:"actor_display_name"`
	Reaction         ReactionKind       `bson:"reaction" json:"reaction"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// Comment represents a comment posted on a faculty profile.
// Comments are immutable after creation and deletable only by their author.
type Comment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID        string             `bson:"subject_id" json:"subject_id"`
	ActorID          string             `bson:"actor_id" json:"actor_id"`
	ActorDisplayName string             `bson:"actor_display_name" json:"actor_display_name"`
	ActorEmail       string             `bson:"actor_email,omitempty" json:"actor_email,omitempty"`
	Body             string             `bson:"body" json:"body"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// Follow represents an actor following a faculty profile.
// Same composite key rule as Like: one record per (subject_id, actor_id).
type Follow struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID        string             `bson:"subject_id" json:"subject_id"`
	ActorID          string             `bson:"actor_id" json:"actor_id"`
	ActorDisplayName string             `bson:"actor_display_name" json:"actor_display_name"`
	ActorEmail       string             `bson:"actor_email,omitempty" json:"actor_email,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// SubjectStats holds the per-profile aggregate counts shown next to the
// engagement controls. Display-only, never used for authorization.
type SubjectStats struct {
	SubjectID     string `json:"subject_id"`
	LikeCount     int64  `json:"like_count"`
	CommentCount  int64  `json:"comment_count"`
	FollowerCount int64  `json:"follower_count"`
}

// CommentPage is one page of newest-first comments. HasMore only signals
// that older comments exist; there is no cursor to fetch them precisely.
type CommentPage struct {
	Comments   []Comment `json:"comments"`
	TotalCount int64     `json:"total_count"`
	HasMore    bool      `json:"has_more"`
}
