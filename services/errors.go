package services

import (
	"errors"
	"fmt"
)

// Engagement failure taxonomy. Callers branch with errors.Is; every condition
// maps to a distinct user-facing message, never a generic failure.
var (
	ErrNoDisplayName    = errors.New("no display name available")
	ErrEmptyBody        = errors.New("comment body is empty")
	ErrBodyTooLong      = errors.New("comment body exceeds maximum length")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeErr wraps a driver-level failure as ErrStoreUnavailable. No retries
// happen at this layer; retry policy belongs to the interaction layer.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
