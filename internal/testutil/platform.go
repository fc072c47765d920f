package testutil

import (
	"sync"

	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/platform"
)

// ManualIdle is a latched IdleScheduler: callbacks queue until FireIdle, and
// callbacks requested after FireIdle run immediately.
type ManualIdle struct {
	mu    sync.Mutex
	fired bool
	queue []func()
}

var _ platform.IdleScheduler = (*ManualIdle)(nil)

// RequestIdle implements platform.IdleScheduler.
func (m *ManualIdle) RequestIdle(fn func()) {
	m.mu.Lock()
	if m.fired {
		m.mu.Unlock()
		fn()
		return
	}
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
}

// FireIdle releases all pending and future idle callbacks.
func (m *ManualIdle) FireIdle() {
	m.mu.Lock()
	m.fired = true
	queue := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}

// ManualVisibility is a latched VisibilityObserver: Show marks an element
// visible, resolving its current and future observations.
type ManualVisibility struct {
	mu        sync.Mutex
	visible   map[dom.Element]bool
	observers map[dom.Element][]func()
	margins   map[dom.Element]string
}

var _ platform.VisibilityObserver = (*ManualVisibility)(nil)

// NewManualVisibility creates an observer with no visible elements.
func NewManualVisibility() *ManualVisibility {
	return &ManualVisibility{
		visible:   make(map[dom.Element]bool),
		observers: make(map[dom.Element][]func()),
		margins:   make(map[dom.Element]string),
	}
}

// Observe implements platform.VisibilityObserver.
func (m *ManualVisibility) Observe(el dom.Element, rootMargin string, fn func()) func() {
	m.mu.Lock()
	m.margins[el] = rootMargin
	if m.visible[el] {
		m.mu.Unlock()
		fn()
		return func() {}
	}
	m.observers[el] = append(m.observers[el], fn)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, el)
	}
}

// Show marks el visible and fires its pending observations.
func (m *ManualVisibility) Show(el dom.Element) {
	m.mu.Lock()
	m.visible[el] = true
	fns := m.observers[el]
	delete(m.observers, el)
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Margin returns the rootMargin recorded for el's observation.
func (m *ManualVisibility) Margin(el dom.Element) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.margins[el]
}

// ManualMedia is a latched MediaMatcher keyed by query string.
type ManualMedia struct {
	mu      sync.Mutex
	matches map[string]bool
	subs    map[string][]chan bool
}

var _ platform.MediaMatcher = (*ManualMedia)(nil)

// NewManualMedia creates a matcher where no query matches yet.
func NewManualMedia() *ManualMedia {
	return &ManualMedia{
		matches: make(map[string]bool),
		subs:    make(map[string][]chan bool),
	}
}

// Subscribe implements platform.MediaMatcher.
func (m *ManualMedia) Subscribe(query string) (bool, <-chan bool, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan bool, 4)
	m.subs[query] = append(m.subs[query], ch)
	stop := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		kept := m.subs[query][:0]
		for _, c := range m.subs[query] {
			if c != ch {
				kept = append(kept, c)
			}
		}
		m.subs[query] = kept
	}
	return m.matches[query], ch, stop
}

// SetMatches flips a query's match state and notifies subscribers.
func (m *ManualMedia) SetMatches(query string, matches bool) {
	m.mu.Lock()
	m.matches[query] = matches
	subs := make([]chan bool, len(m.subs[query]))
	copy(subs, m.subs[query])
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- matches:
		default:
		}
	}
}

// ManualDeferrer collects deferred tasks until Drain runs them in order.
type ManualDeferrer struct {
	mu    sync.Mutex
	queue []func()
}

var _ platform.Deferrer = (*ManualDeferrer)(nil)

// Defer implements platform.Deferrer.
func (d *ManualDeferrer) Defer(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, fn)
}

// Pending returns the number of queued tasks.
func (d *ManualDeferrer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Drain runs queued tasks in FIFO order, including tasks queued while
// draining, and returns how many ran.
func (d *ManualDeferrer) Drain() int {
	ran := 0
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return ran
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
		ran++
	}
}
