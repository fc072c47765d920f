// Package gate implements the requirement gates: independent asynchronous
// readiness sources with a uniform "wait until ready" contract, plus their
// AND composition. A gate never fails on its own; it resolves or it waits.
// Only context cancellation interrupts a wait.
package gate

import (
	"context"

	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/future"
	"github.com/vk/lazykit/internal/platform"
)

// Gate resolves once its readiness condition holds.
type Gate interface {
	// Wait blocks until the condition holds or ctx is cancelled. A gate that
	// is already satisfied returns nil without suspension.
	Wait(ctx context.Context) error
}

// immediate is the trivially satisfied gate.
type immediate struct{}

func (immediate) Wait(context.Context) error { return nil }

// Immediate returns a gate that is always satisfied. It is the composite for
// empty requirement sets and the semantics behind the "immediate" and
// "eager" strategy tokens.
func Immediate() Gate {
	return immediate{}
}

// futureGate adapts a future into a Gate.
type futureGate struct {
	f *future.Future
}

func (g futureGate) Wait(ctx context.Context) error {
	return g.f.Wait(ctx)
}

// Idle returns a gate satisfied on the platform's next idle period.
func Idle(s platform.IdleScheduler) Gate {
	f := future.New()
	s.RequestIdle(f.Resolve)
	return futureGate{f}
}

// Visible returns a gate satisfied the first time el intersects the
// viewport. The observation is detached once it has fired.
func Visible(o platform.VisibilityObserver, el dom.Element, rootMargin string) Gate {
	f := future.New()
	stop := o.Observe(el, rootMargin, f.Resolve)
	go func() {
		<-f.Done()
		stop()
	}()
	return futureGate{f}
}

// Media returns a gate satisfied the first time query matches. A query that
// already matches at subscription time resolves immediately.
func Media(m platform.MediaMatcher, query string) Gate {
	matches, changes, stop := m.Subscribe(query)
	if matches {
		stop()
		return Immediate()
	}

	f := future.New()
	go func() {
		defer stop()
		for v := range changes {
			if v {
				f.Resolve()
				return
			}
		}
	}()
	return futureGate{f}
}

// Event returns a gate satisfied when the named custom event is dispatched
// on the document. The listener is removed after the first dispatch.
func Event(doc dom.Document, name string) Gate {
	f := future.New()
	remove := doc.AddEventListener(name, f.Resolve)
	go func() {
		<-f.Done()
		remove()
	}()
	return futureGate{f}
}

// All composes gates with AND semantics: the composite is satisfied only
// once every member is. An empty set composes to Immediate.
func All(gates ...Gate) Gate {
	if len(gates) == 0 {
		return Immediate()
	}
	if len(gates) == 1 {
		return gates[0]
	}
	return all(gates)
}

type all []Gate

func (a all) Wait(ctx context.Context) error {
	for _, g := range a {
		if err := g.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
