// Package loader fetches component modules with a per-name single-flight
// guarantee: however many elements become ready at once, each component's
// module producer runs at most once, and every waiter observes the same
// outcome. A failed load leaves the registration Unloaded so a later element
// can retry.
package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/host"
	"github.com/vk/lazykit/internal/registry"
)

// ErrNoLoader is returned when a registration has no module producer
// attached at load time.
var ErrNoLoader = errors.New("component has no loader")

// Loader coordinates module fetches against the registry and registers the
// selected implementation with the host framework.
type Loader struct {
	registry *registry.Registry
	host     host.Host
	group    singleflight.Group
}

// New creates a loader bound to a registry and a host framework.
func New(reg *registry.Registry, h host.Host) *Loader {
	return &Loader{registry: reg, host: h}
}

// EnsureLoaded makes sure the named component's module is fetched, its
// export selected, and the implementation registered with the host. Loaded
// components return immediately. Concurrent callers for the same name share
// one in-flight fetch; its error, if any, propagates to all of them and the
// load state stays Unloaded.
func (l *Loader) EnsureLoaded(ctx context.Context, name string) error {
	reg, ok := l.registry.Get(name)
	if !ok {
		return fmt.Errorf("ensuring component %q: %w", name, registry.ErrNotFound)
	}
	if reg.State() == registry.Loaded {
		return nil
	}

	// The closure runs under the first caller's ctx; later arrivals share
	// its result rather than re-triggering the fetch.
	_, err, _ := l.group.Do(name, func() (any, error) {
		return nil, l.load(ctx, reg)
	})
	return err
}

func (l *Loader) load(ctx context.Context, reg *registry.Registration) error {
	if reg.State() == registry.Loaded {
		return nil // Lost a race against a completed flight.
	}

	name := reg.Name()
	logger := ctxlog.FromContext(ctx)

	produce := reg.Loader()
	if produce == nil {
		return fmt.Errorf("loading component %q: %w", name, ErrNoLoader)
	}

	logger.Debug("Fetching component module.", "name", name)
	mod, err := produce(ctx)
	if err != nil {
		return fmt.Errorf("loading component %q: %w", name, err)
	}

	impl, err := mod.Select(name)
	if err != nil {
		return fmt.Errorf("loading component %q: %w", name, err)
	}

	l.host.RegisterComponentFactory(name, impl)
	reg.MarkLoaded(impl)
	logger.Debug("Component module registered with host.", "name", name)
	return nil
}
