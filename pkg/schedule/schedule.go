// Package schedule runs named callbacks after a delay. Every scheduled event
// can be canceled, and closing a scheduler cancels whatever is still pending.
package schedule

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("schedule: scheduler closed")

// Func is the callback of a scheduled event. The context is canceled when
// the owning scheduler closes.
type Func func(ctx context.Context)

// Scheduler is implemented by Timer (wall clock) and Manual (tests).
type Scheduler interface {
	// After registers fn to run once after delay. The returned Handle
	// cancels it.
	After(name string, delay time.Duration, fn Func) (Handle, error)
	// Close cancels pending events and waits for running callbacks.
	Close() error
}

// Handle cancels one scheduled event. Cancel reports whether the event was
// still pending.
type Handle interface {
	Cancel() bool
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
