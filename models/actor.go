package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is the identity performing an engagement action, either an anonymous
// browser-profile identity or one adopted from an authenticated session.
type Actor struct {
	ActorID       string `json:"actor_id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// User is an account in the bundled identity provider.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Session is an authenticated sign-in session backed by the sessions
// collection and referenced by the session cookie.
type Session struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"session_id" json:"session_id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Email        string             `bson:"email" json:"email"`
	IPAddress    string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent    string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed time.Time          `bson:"last_accessed" json:"last_accessed"`
	ExpiresAt    time.Time          `bson:"expires_at" json:"expires_at"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
}

// Actor returns the engagement actor this session authenticates.
func (s *Session) Actor() Actor {
	return Actor{
		ActorID:       s.UserID,
		DisplayName:   s.DisplayName,
		Email:         s.Email,
		Authenticated: true,
	}
}
