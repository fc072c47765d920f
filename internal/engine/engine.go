package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/vk/lazykit/internal/activator"
	"github.com/vk/lazykit/internal/component"
	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/host"
	"github.com/vk/lazykit/internal/loader"
	"github.com/vk/lazykit/internal/platform"
	"github.com/vk/lazykit/internal/registry"
	"github.com/vk/lazykit/internal/strategy"
	"github.com/vk/lazykit/internal/watcher"
)

// Options overrides the engine's collaborators. Zero-value fields get the
// delay-based platform fallbacks and a fresh registry, so an embedder only
// wires what its runtime actually provides.
type Options struct {
	Registry   *registry.Registry
	Idle       platform.IdleScheduler
	Visibility platform.VisibilityObserver
	Media      platform.MediaMatcher
	Deferrer   platform.Deferrer
	Importer   component.Importer
}

// Engine drives the full pipeline: discovery, strategy resolution, gated
// loading, and host handoff. One engine per document; it is process-wide
// state torn down implicitly at page unload.
type Engine struct {
	cfg  *config.Config
	doc  dom.Document
	host host.Host

	registry *registry.Registry
	loader   *loader.Loader
	watcher  *watcher.Watcher

	idle       platform.IdleScheduler
	visibility platform.VisibilityObserver
	media      platform.MediaMatcher
	deferrer   platform.Deferrer
	importer   component.Importer

	nextID atomic.Int64
	wg     sync.WaitGroup
}

// New creates an engine over doc, handing loaded components to h.
func New(cfg *config.Config, doc dom.Document, h host.Host, opts Options) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	e := &Engine{
		cfg:        cfg,
		doc:        doc,
		host:       h,
		registry:   opts.Registry,
		idle:       opts.Idle,
		visibility: opts.Visibility,
		media:      opts.Media,
		deferrer:   opts.Deferrer,
		importer:   opts.Importer,
	}
	if e.registry == nil {
		e.registry = registry.New()
	}
	if e.idle == nil {
		e.idle = platform.DelayIdleScheduler{Delay: cfg.FallbackDelay}
	}
	if e.visibility == nil {
		e.visibility = platform.DelayVisibilityObserver{Delay: cfg.FallbackDelay}
	}
	if e.media == nil {
		e.media = platform.DelayMediaMatcher{Delay: cfg.FallbackDelay}
	}
	if e.deferrer == nil {
		e.deferrer = platform.NewTurnScheduler()
	}

	e.loader = loader.New(e.registry, h)
	e.watcher = watcher.New(doc, cfg, watcher.Hooks{
		OnInline:     e.registerInline,
		OnDiscovered: e.process,
	})
	return e, nil
}

// Registry exposes the component registry for declaration-time registration.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Register declares a component by name with its module producer.
func (e *Engine) Register(ctx context.Context, name string, load component.LoaderFunc) {
	e.registry.Register(ctx, name, load)
}

// EventName returns the custom event name that triggers the event gate for
// the given instance id.
func (e *Engine) EventName(instanceID string) string {
	return e.cfg.EventName(instanceID)
}

// Start begins observation and runs the initial full scan. The watcher
// subscribes before the scan so insertions racing the scan are observed
// rather than lost; the engine deliberately does not deduplicate beyond one
// full pass plus mutation deltas.
func (e *Engine) Start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	e.watcher.Start(ctx)

	inline := e.doc.ElementsWithAttribute(e.cfg.SrcAttribute())
	for _, el := range inline {
		e.registerInline(ctx, el)
	}

	marked := e.doc.ElementsWithAttribute(e.cfg.LoadAttribute())
	logger.Debug("Initial scan complete.", "inline", len(inline), "marked", len(marked))
	for _, el := range marked {
		e.process(ctx, el)
	}
}

// Stop halts discovery. Pipelines already past their gates still finish.
func (e *Engine) Stop() {
	e.watcher.Stop()
	if ts, ok := e.deferrer.(*platform.TurnScheduler); ok {
		ts.Stop()
	}
}

// Settle blocks until every pipeline started so far has finished and their
// deferred activations have run, or ctx is cancelled.
func (e *Engine) Settle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Deferred activations queued by finished pipelines must also land.
	if ts, ok := e.deferrer.(*platform.TurnScheduler); ok {
		ts.Flush()
	}
	return nil
}

// registerInline registers a component declared directly on an element via
// the load-src attribute. The registration happens once per name; the import
// itself is deferred to the single-flight loader.
func (e *Engine) registerInline(ctx context.Context, el dom.Element) {
	logger := ctxlog.FromContext(ctx)

	src, ok := el.GetAttribute(e.cfg.SrcAttribute())
	if !ok || src == "" {
		return
	}
	expr, ok := el.GetAttribute(e.cfg.DataAttribute())
	if !ok {
		logger.Debug("Inline element lacks a data binding, skipping.", "src", src)
		return
	}
	name := config.ComponentName(expr)
	if name == "" {
		logger.Debug("Inline element has an empty component name, skipping.", "src", src)
		return
	}
	if _, exists := e.registry.Get(name); exists {
		return
	}
	if e.importer == nil {
		logger.Warn("No module importer configured, inline component unavailable.", "name", name, "src", src)
		return
	}

	e.registry.Register(ctx, name, func(ctx context.Context) (*component.Module, error) {
		return e.importer.Import(ctx, src)
	})
	logger.Debug("Inline component registered.", "name", name, "src", src)
}

// process builds an instance for el and runs its pipeline asynchronously.
// Elements without a data binding and names that were never registered are
// excluded from the pass; neither is an error.
func (e *Engine) process(ctx context.Context, el dom.Element) {
	logger := ctxlog.FromContext(ctx)

	expr, ok := el.GetAttribute(e.cfg.DataAttribute())
	if !ok {
		logger.Debug("Element lacks a data binding, skipping.")
		return
	}
	name := config.ComponentName(expr)
	if name == "" {
		logger.Debug("Element has an empty component name, skipping.")
		return
	}
	if _, registered := e.registry.Get(name); !registered {
		logger.Debug("Component not registered, skipping element.", "name", name)
		return
	}

	strategyExpr, _ := el.GetAttribute(e.cfg.LoadAttribute())
	if strategyExpr == "" {
		strategyExpr = e.cfg.DefaultStrategy
	}

	inst := Instance{
		Name:     name,
		Strategy: strategyExpr,
		Element:  el,
		ID:       e.instanceID(el),
	}

	e.wg.Add(1)
	go e.run(ctx, inst)
}

// run drives one instance through its strict three-phase order: all gates,
// then the single-flight load, then activation.
func (e *Engine) run(ctx context.Context, inst Instance) {
	defer e.wg.Done()
	logger := ctxlog.FromContext(ctx).With("component", inst.Name, "instance", inst.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	g := strategy.Resolve(ctx, inst.Strategy, strategy.Deps{
		Document:   e.doc,
		Element:    inst.Element,
		EventName:  e.cfg.EventName(inst.ID),
		Idle:       e.idle,
		Visibility: e.visibility,
		Media:      e.media,
	})

	if err := g.Wait(ctx); err != nil {
		logger.Debug("Readiness wait interrupted.", "error", err)
		return
	}

	if err := e.loader.EnsureLoaded(ctx, inst.Name); err != nil {
		// The unhandled-rejection analogue: surfaced, element left pending,
		// load state untouched so a later instance can retry.
		logger.Error("Component load failed.", "error", err)
		return
	}

	activator.Activate(ctx, inst.Element, e.cfg, e.host, e.deferrer)
	logger.Debug("Instance activated.", "strategy", inst.Strategy)
}

// instanceID returns the element's own id when present, else a generated
// monotonic id. The id scopes the instance's event name.
func (e *Engine) instanceID(el dom.Element) string {
	if id, ok := el.GetAttribute("id"); ok && id != "" {
		return id
	}
	return strconv.FormatInt(e.nextID.Add(1), 10)
}
