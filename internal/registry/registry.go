// Package registry holds the process-wide component registrations: one entry
// per component name, tracking its loader and monotonic load state. Entries
// live for the page's lifetime; there is no teardown path short of process
// exit. Load state is mutated only by the loader package.
package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vk/lazykit/internal/component"
	"github.com/vk/lazykit/internal/ctxlog"
)

// LoadState tracks whether a component's module has been fetched and handed
// to the host framework. The transition Unloaded -> Loaded is monotonic.
type LoadState int32

const (
	Unloaded LoadState = iota
	Loaded
)

// String implements fmt.Stringer for log output.
func (s LoadState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

var (
	// ErrNotFound is returned when a component name was never registered.
	ErrNotFound = errors.New("component not registered")
	// ErrAlreadyLoaded is returned when a loader is attached to a
	// registration whose module has already been fetched.
	ErrAlreadyLoaded = errors.New("component already loaded")
)

// Registration is one component's entry: its name, its module producer, and
// its load state. The implementation cache is written exactly once, before
// the Loaded state becomes observable.
type Registration struct {
	name string

	mu     sync.Mutex
	loader component.LoaderFunc

	state atomic.Int32
	impl  atomic.Value
}

// Name returns the component name this registration is keyed by.
func (r *Registration) Name() string {
	return r.name
}

// State returns the current load state.
func (r *Registration) State() LoadState {
	return LoadState(r.state.Load())
}

// Loader returns the registered module producer, or nil if none is attached.
func (r *Registration) Loader() component.LoaderFunc {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loader
}

// Impl returns the cached implementation once the registration is Loaded.
func (r *Registration) Impl() (any, bool) {
	if r.State() != Loaded {
		return nil, false
	}
	return r.impl.Load(), true
}

// MarkLoaded caches the selected implementation and flips the state to
// Loaded. Only the loader package calls this; the state never reverts.
func (r *Registration) MarkLoaded(impl any) {
	r.impl.Store(impl)
	r.state.Store(int32(Loaded))
}

// Registry is the mapping of component name to registration.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Registration
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Registration)}
}

// Register creates or overwrites the registration for name with state
// Unloaded. loader may be nil and attached later via SetLoader.
func (r *Registry) Register(ctx context.Context, name string, loader component.LoaderFunc) *Registration {
	ctxlog.FromContext(ctx).Debug("Registering component.", "name", name, "hasLoader", loader != nil)

	reg := &Registration{name: name, loader: loader}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = reg
	return reg
}

// SetLoader attaches a module producer to an existing unloaded registration.
func (r *Registry) SetLoader(ctx context.Context, name string, loader component.LoaderFunc) error {
	reg, ok := r.Get(name)
	if !ok {
		return ErrNotFound
	}
	if reg.State() == Loaded {
		return ErrAlreadyLoaded
	}

	ctxlog.FromContext(ctx).Debug("Attaching loader to component.", "name", name)
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.loader = loader
	return nil
}

// Get returns the registration for name, if any.
func (r *Registry) Get(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[name]
	return reg, ok
}

// Names returns all registered component names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
