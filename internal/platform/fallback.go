package platform

import (
	"time"

	"github.com/vk/lazykit/internal/dom"
)

// DefaultFallbackDelay is used when a runtime lacks an idle, visibility, or
// media primitive and the configuration does not override the delay.
const DefaultFallbackDelay = 200 * time.Millisecond

// DelayIdleScheduler satisfies idle requests after a fixed delay. It stands
// in for requestIdleCallback on runtimes without an idle notion.
type DelayIdleScheduler struct {
	Delay time.Duration
}

var _ IdleScheduler = DelayIdleScheduler{}

// RequestIdle schedules fn after the configured delay.
func (s DelayIdleScheduler) RequestIdle(fn func()) {
	time.AfterFunc(s.delay(), fn)
}

func (s DelayIdleScheduler) delay() time.Duration {
	if s.Delay > 0 {
		return s.Delay
	}
	return DefaultFallbackDelay
}

// DelayVisibilityObserver treats every observed element as visible after a
// fixed delay. Without an intersection primitive the engine must still make
// forward progress, so absence degrades to "eventually visible".
type DelayVisibilityObserver struct {
	Delay time.Duration
}

var _ VisibilityObserver = DelayVisibilityObserver{}

// Observe fires fn after the configured delay regardless of rootMargin.
func (o DelayVisibilityObserver) Observe(_ dom.Element, _ string, fn func()) func() {
	t := time.AfterFunc(o.delay(), fn)
	return func() { t.Stop() }
}

func (o DelayVisibilityObserver) delay() time.Duration {
	if o.Delay > 0 {
		return o.Delay
	}
	return DefaultFallbackDelay
}

// DelayMediaMatcher reports every query as matching after a fixed delay.
type DelayMediaMatcher struct {
	Delay time.Duration
}

var _ MediaMatcher = DelayMediaMatcher{}

// Subscribe reports no current match and delivers a single match after the
// configured delay.
func (m DelayMediaMatcher) Subscribe(_ string) (bool, <-chan bool, func()) {
	d := m.Delay
	if d <= 0 {
		d = DefaultFallbackDelay
	}

	changes := make(chan bool, 1)
	t := time.AfterFunc(d, func() { changes <- true })
	return false, changes, func() { t.Stop() }
}
