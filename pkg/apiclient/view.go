package apiclient

import (
	"context"
	"sync"
)

// ViewState names the phases of a page's fetch cycle.
type ViewState string

const (
	ViewIdle    ViewState = "idle"
	ViewLoading ViewState = "loading"
	ViewReady   ViewState = "ready"
	ViewError   ViewState = "error"
)

// View tracks the rows and state of one resource page. Load moves the
// view to loading and then to ready or error; a failed load resets the
// rows. Mutations reload the full list on success and only replace the
// retained error message on failure, leaving the rows as they were.
//
// Loads are not cancelled: a Load still in flight when another
// completes will overwrite the view when it lands. Last writer wins.
type View[T any] struct {
	fetch func(context.Context) ([]T, error)

	mu      sync.Mutex
	state   ViewState
	rows    []T
	message string
}

// NewView builds an idle view around the given list call.
func NewView[T any](fetch func(context.Context) ([]T, error)) *View[T] {
	return &View[T]{fetch: fetch, state: ViewIdle}
}

// Load fetches the full list and replaces the view's contents.
func (v *View[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	v.state = ViewLoading
	v.mu.Unlock()

	rows, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = ViewError
		v.message = err.Error()
		v.rows = nil
		return err
	}
	v.state = ViewReady
	v.rows = rows
	v.message = ""
	return nil
}

// Mutate runs a create or delete call. Success triggers one full
// reload; failure records the message and leaves the rows untouched.
func (v *View[T]) Mutate(ctx context.Context, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		v.mu.Lock()
		v.message = err.Error()
		v.mu.Unlock()
		return err
	}
	return v.Load(ctx)
}

// Delete asks confirm before mutating and is a no-op when declined.
func (v *View[T]) Delete(ctx context.Context, confirm func() bool, op func(context.Context) error) error {
	if confirm != nil && !confirm() {
		return nil
	}
	return v.Mutate(ctx, op)
}

// State reports the current phase.
func (v *View[T]) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows returns a copy of the loaded rows.
func (v *View[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.rows == nil {
		return nil
	}
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

// Message returns the retained error message, empty when none.
func (v *View[T]) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}
