package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"

	"faculty-hub/models"
)

// identityKey is the fixed key the profile's identity record lives under.
const identityKey = "identity/profile"

// IdentityRecord is the locally persisted identity. It never enters the
// shared document store; the client profile owns it exclusively.
type IdentityRecord struct {
	ActorID       string `json:"actor_id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated,omitempty"`
}

// IdentityStore persists the identity record in an embedded pebble database,
// standing in for the browser profile's local storage.
type IdentityStore struct {
	db *pebble.DB
}

// OpenIdentityStore opens (or creates) the local identity database at path.
func OpenIdentityStore(path string) (*IdentityStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open identity store: %w", err)
	}
	slog.Info("Identity store opened", "path", path)
	return &IdentityStore{db: db}, nil
}

// Close closes the identity database.
func (s *IdentityStore) Close() error {
	return s.db.Close()
}

func (s *IdentityStore) load() (*IdentityRecord, error) {
	value, closer, err := s.db.Get([]byte(identityKey))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	defer closer.Close()

	var record IdentityRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, fmt.Errorf("corrupt identity record: %w", err)
	}
	return &record, nil
}

func (s *IdentityStore) save(record *IdentityRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal identity record: %w", err)
	}
	if err := s.db.Set([]byte(identityKey), data, pebble.Sync); err != nil {
		return storeErr(err)
	}
	return nil
}

// Resolver produces the stable actor identity for this client profile.
// It is constructed once and injected into every interaction, never read
// from ambient global state.
type Resolver struct {
	store *IdentityStore

	// prompt supplies a display name when none is stored. It may block on
	// user input. A nil prompt means no name can be obtained interactively.
	prompt func() string
}

func NewResolver(store *IdentityStore, prompt func() string) *Resolver {
	return &Resolver{store: store, prompt: prompt}
}

// newActorID generates an anonymous actor id with a time component and a
// random suffix. Collisions are not detected downstream, so the id carries
// enough entropy to make them negligible.
func newActorID() string {
	return fmt.Sprintf("anon-%d-%s", time.Now().UnixMilli(), uuid.NewString())
}

// ResolveActor returns the (actorId, displayName) pair for the current
// profile, generating and persisting an anonymous identity on first use.
// Fails with ErrNoDisplayName when no display name can be obtained, in which
// case nothing is persisted and no mutation may proceed.
func (r *Resolver) ResolveActor(ctx context.Context) (models.Actor, error) {
	record, err := r.store.load()
	if err != nil {
		return models.Actor{}, err
	}
	if record == nil {
		record = &IdentityRecord{}
	}

	if record.ActorID == "" {
		record.ActorID = newActorID()
	}

	if record.DisplayName == "" {
		if r.prompt != nil {
			record.DisplayName = strings.TrimSpace(r.prompt())
		}
		if record.DisplayName == "" {
			return models.Actor{}, ErrNoDisplayName
		}
	}

	// Persist on every successful resolution so later calls never re-prompt.
	if err := r.store.save(record); err != nil {
		return models.Actor{}, err
	}

	return models.Actor{
		ActorID:       record.ActorID,
		DisplayName:   record.DisplayName,
		Email:         record.Email,
		Authenticated: record.Authenticated,
	}, nil
}

// AdoptAuthenticatedIdentity overlays the session identity onto the local
// record: the session uid replaces the anonymous actor id for all subsequent
// engagement calls. Engagement already recorded under the anonymous id stays
// attributed to it; there is no retroactive migration.
func (r *Resolver) AdoptAuthenticatedIdentity(ctx context.Context, session *models.Session) error {
	if session == nil || session.UserID == "" {
		return fmt.Errorf("cannot adopt identity from an empty session")
	}

	record, err := r.store.load()
	if err != nil {
		return err
	}
	if record == nil {
		record = &IdentityRecord{}
	}

	displayName := session.DisplayName
	if displayName == "" {
		displayName = emailLocalPart(session.Email)
	}

	record.ActorID = session.UserID
	if displayName != "" {
		record.DisplayName = displayName
	}
	if session.Email != "" {
		record.Email = session.Email
	}
	record.Authenticated = true

	if err := r.store.save(record); err != nil {
		return err
	}

	slog.Info("Authenticated identity adopted",
		"actorID", record.ActorID,
		"displayName", record.DisplayName,
	)

	return nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
