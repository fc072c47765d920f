// Package component defines the shape of a loaded component module and the
// ordered export-selection rules the loader applies to it.
package component

import (
	"context"
	"errors"
	"fmt"
)

// DefaultExport is the export name consulted when a module exposes no export
// matching the component's own name.
const DefaultExport = "default"

// ErrNoExport is returned when a module exposes nothing selectable.
var ErrNoExport = errors.New("module has no selectable export")

// Export is one named implementation exposed by a module.
type Export struct {
	Name string
	Impl any
}

// Module is the engine's view of a dynamically loaded component module: a
// mapping of export name to implementation that preserves declaration order,
// because the last selection fallback is "first export declared".
type Module struct {
	Exports []Export
}

// NewModule builds a module from exports in declaration order.
func NewModule(exports ...Export) *Module {
	return &Module{Exports: exports}
}

// Select picks the implementation to register for the named component:
// an export named exactly name, then the default export, then the first
// export in declaration order, then ErrNoExport.
func (m *Module) Select(name string) (any, error) {
	for _, e := range m.Exports {
		if e.Name == name {
			return e.Impl, nil
		}
	}
	for _, e := range m.Exports {
		if e.Name == DefaultExport {
			return e.Impl, nil
		}
	}
	if len(m.Exports) > 0 {
		return m.Exports[0].Impl, nil
	}
	return nil, fmt.Errorf("selecting export for %q: %w", name, ErrNoExport)
}

// LoaderFunc produces a component's module. It is invoked at most once per
// component name by the single-flight loader.
type LoaderFunc func(ctx context.Context) (*Module, error)

// Importer turns an inline source reference (the value of the load-src
// attribute) into a module. The mechanism behind it — bundler, network,
// filesystem — is the embedder's concern, not the engine's.
type Importer interface {
	Import(ctx context.Context, src string) (*Module, error)
}
