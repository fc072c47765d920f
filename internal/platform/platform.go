// Package platform abstracts the browser primitives the requirement gates
// subscribe to: idle-callback scheduling, intersection-based visibility,
// media-query matching, and deferred task scheduling. Real bindings implement
// these interfaces; the fallback implementations in this package resolve after
// a fixed delay so a missing primitive degrades instead of deadlocking the
// pipeline.
package platform

import "github.com/vk/lazykit/internal/dom"

// IdleScheduler runs fn during the platform's next idle period.
type IdleScheduler interface {
	RequestIdle(fn func())
}

// VisibilityObserver invokes fn the first time el's bounding box intersects
// the viewport. rootMargin widens or narrows the intersection box and may be
// empty. The returned stop func detaches the observation; implementations
// must tolerate stop being called after fn has fired.
type VisibilityObserver interface {
	Observe(el dom.Element, rootMargin string, fn func()) (stop func())
}

// MediaMatcher evaluates media queries. Subscribe reports whether query
// matches right now and delivers subsequent match states on changes until
// stop is called.
type MediaMatcher interface {
	Subscribe(query string) (matches bool, changes <-chan bool, stop func())
}

// Deferrer schedules fn one scheduling turn later, never synchronously. The
// activator relies on this: the host framework's own mutation observation
// must get a turn to notice attribute changes before subtree activation runs.
type Deferrer interface {
	Defer(fn func())
}
