// Package future provides the single-assignment readiness primitive that
// requirement gates resolve through.
package future

import (
	"context"
	"sync"
)

// Future is a one-shot readiness signal. It starts pending and transitions to
// resolved exactly once; the transition is observable through Wait and Done.
// A Future carries no payload: gates report readiness, not values.
type Future struct {
	once sync.Once
	done chan struct{}
}

// New returns a pending Future.
func New() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a Future that is already resolved.
func Resolved() *Future {
	f := New()
	f.Resolve()
	return f
}

// Resolve marks the future ready. Subsequent calls are no-ops, so a gate
// whose underlying source fires more than once stays well-behaved.
func (f *Future) Resolve() {
	f.once.Do(func() { close(f.done) })
}

// Ready reports whether the future has resolved.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the future resolves.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is cancelled. A resolved
// future returns nil without suspension.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	default:
	}

	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
