package platform

import "sync"

// TurnScheduler is the production Deferrer: a single goroutine draining a
// FIFO queue. Everything deferred during one turn runs strictly after that
// turn completes, which is the ordering contract the activator needs, without
// resorting to a timed delay.
type TurnScheduler struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

var _ Deferrer = (*TurnScheduler)(nil)

// NewTurnScheduler creates and starts a turn scheduler.
func NewTurnScheduler() *TurnScheduler {
	s := &TurnScheduler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Defer enqueues fn for the next turn. After Stop, fn is dropped.
func (s *TurnScheduler) Defer(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every task deferred before the call has run. After
// Stop it returns immediately.
func (s *TurnScheduler) Flush() {
	flushed := make(chan struct{})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, func() { close(flushed) })
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	select {
	case <-flushed:
	case <-s.done:
	}
}

// Stop terminates the scheduler. Queued tasks that have not started are
// discarded.
func (s *TurnScheduler) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
}

func (s *TurnScheduler) loop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			fn := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			fn()
		}
	}
}
