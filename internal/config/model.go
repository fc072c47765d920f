package config

import "context"

// Model is the unified representation of everything a configuration source
// provides: the engine configuration plus declaration-time component
// registrations.
type Model struct {
	Engine     *Config
	Components []*ComponentDefinition
}

// ComponentDefinition is the format-agnostic representation of a `component`
// block: a named module whose exports are literal implementations, optionally
// addressable through a source reference for inline-declared elements.
type ComponentDefinition struct {
	Name string
	// Src is the source reference load-src attributes resolve against.
	// Empty means the component is only reachable by name.
	Src string
	// Exports preserve declaration order; the loader's last selection
	// fallback is "first export declared".
	Exports []ExportDefinition
}

// ExportDefinition is one named export of a declared component module.
type ExportDefinition struct {
	Name  string
	Value string
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given path (a file or a directory of
	// files) and translates it into the format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}
