// Package watcher observes the live document tree and feeds newly inserted
// eligible elements back into the activation pipeline, so an element added
// after the initial scan ends up in the same state as one present at load.
package watcher

import (
	"context"
	"sync"

	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/dom"
)

// Hooks are the pipeline entry points the watcher re-enters. OnInline runs
// before OnDiscovered for the same element, because an inline-declared
// component must be registered before its strategy is resolved.
type Hooks struct {
	OnInline     func(ctx context.Context, el dom.Element)
	OnDiscovered func(ctx context.Context, el dom.Element)
}

// Watcher consumes the document's mutation stream for the page's lifetime.
// Mutation batches are processed in delivery order; elements within a batch
// in insertion order.
type Watcher struct {
	doc   dom.Document
	cfg   *config.Config
	hooks Hooks

	stopOnce sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

// New creates a watcher. Start must be called to begin observation.
func New(doc dom.Document, cfg *config.Config, hooks Hooks) *Watcher {
	return &Watcher{
		doc:     doc,
		cfg:     cfg,
		hooks:   hooks,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start subscribes to the document's mutation stream and processes it until
// ctx is cancelled or Stop is called. The subscription is established before
// Start returns, so no insertion after Start can be missed.
func (w *Watcher) Start(ctx context.Context) {
	muts := w.doc.Mutations(ctx)
	go w.loop(ctx, muts)
}

// Stop terminates the watcher. Tests only; on a page the watcher lives until
// process exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
	<-w.stopped
}

func (w *Watcher) loop(ctx context.Context, muts <-chan dom.Mutation) {
	defer close(w.stopped)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovery watcher started.")

	for {
		select {
		case <-w.done:
			logger.Debug("Discovery watcher stopped.")
			return
		case m, ok := <-muts:
			if !ok {
				logger.Debug("Mutation stream closed, watcher exiting.")
				return
			}
			w.handle(ctx, m)
		}
	}
}

// handle applies the eligibility filter to one mutation batch.
func (w *Watcher) handle(ctx context.Context, m dom.Mutation) {
	for _, el := range m.Added {
		if el.HasAttribute(w.cfg.SrcAttribute()) && w.hooks.OnInline != nil {
			w.hooks.OnInline(ctx, el)
		}
		if el.HasAttribute(w.cfg.LoadAttribute()) && w.hooks.OnDiscovered != nil {
			w.hooks.OnDiscovered(ctx, el)
		}
	}
}
