// Package interaction holds the state machines behind the engagement UI
// affordances: the like and follow toggles, the comment panel, and share.
// Each affordance guards its own in-flight store call, applies state
// optimistically, and reverts to the last server-confirmed state on failure.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"faculty-hub/services"
)

// DefaultTimeout bounds a single store call so a hung call cannot leave a
// control disabled forever. On expiry the optimistic state reverts and the
// control re-enables.
const DefaultTimeout = 20 * time.Second

var (
	// ErrInFlight means the affordance already has a store call
	// outstanding; the triggering click is dropped, not queued.
	ErrInFlight = errors.New("operation already in flight")

	// ErrNotConfirmed means a destructive action was attempted without the
	// explicit confirmation step.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// mapTimeout turns a deadline expiry into a StoreUnavailable condition so a
// hung call surfaces like any other store outage, with the control
// re-enabled.
func mapTimeout(err error) error {
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", services.ErrStoreUnavailable)
	}
	return err
}

// ToggleState is the snapshot the UI binds to.
type ToggleState struct {
	Active bool
	Count  int64
	Busy   bool
}

// Toggle is the guarded optimistic toggle behind the like and follow
// buttons. Engage and disengage perform the store mutation and return the
// refreshed count read back from the store.
type Toggle struct {
	mu        sync.Mutex
	active    bool
	count     int64
	inFlight  bool
	timeout   time.Duration
	engage    func(ctx context.Context) (int64, error)
	disengage func(ctx context.Context) (int64, error)
}

func NewToggle(active bool, count int64, engage, disengage func(ctx context.Context) (int64, error)) *Toggle {
	return &Toggle{
		active:    active,
		count:     count,
		timeout:   DefaultTimeout,
		engage:    engage,
		disengage: disengage,
	}
}

// SetTimeout overrides the per-call deadline.
func (t *Toggle) SetTimeout(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d > 0 {
		t.timeout = d
	}
}

// State returns the current snapshot.
func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ToggleState{Active: t.active, Count: t.count, Busy: t.inFlight}
}

// Toggle flips the control. The flip is visible immediately through State;
// the count and final state come from the store's confirmation. On failure
// the state reverts to its pre-click value and the error surfaces to the
// caller for presentation.
func (t *Toggle) Toggle(ctx context.Context) (ToggleState, error) {
	t.mu.Lock()
	if t.inFlight {
		state := ToggleState{Active: t.active, Count: t.count, Busy: true}
		t.mu.Unlock()
		return state, ErrInFlight
	}
	t.inFlight = true
	prevActive, prevCount := t.active, t.count
	t.active = !t.active
	engaging := t.active
	timeout := t.timeout
	t.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		count int64
		err   error
	)
	if engaging {
		count, err = t.engage(callCtx)
	} else {
		count, err = t.disengage(callCtx)
	}

	err = mapTimeout(err)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false

	if err != nil {
		t.active, t.count = prevActive, prevCount
		return ToggleState{Active: t.active, Count: t.count}, err
	}

	t.count = count
	return ToggleState{Active: t.active, Count: t.count}, nil
}
