package app

import (
	"context"
	"fmt"

	"github.com/vk/lazykit/internal/component"
	"github.com/vk/lazykit/internal/config"
)

// manifestImporter resolves inline source references against the `component`
// blocks declared in the configuration manifest. A src that no block
// declares is a load failure, not a startup error: the element stays pending.
type manifestImporter struct {
	bySrc map[string]*component.Module
}

var _ component.Importer = (*manifestImporter)(nil)

func newManifestImporter(defs []*config.ComponentDefinition) *manifestImporter {
	imp := &manifestImporter{bySrc: make(map[string]*component.Module)}
	for _, def := range defs {
		if def.Src == "" {
			continue
		}
		imp.bySrc[def.Src] = moduleFromDefinition(def)
	}
	return imp
}

func (m *manifestImporter) Import(_ context.Context, src string) (*component.Module, error) {
	mod, ok := m.bySrc[src]
	if !ok {
		return nil, fmt.Errorf("no component declared for source %q", src)
	}
	return mod, nil
}

// moduleFromDefinition builds a module whose exports carry the declared
// literal values, preserving declaration order.
func moduleFromDefinition(def *config.ComponentDefinition) *component.Module {
	exports := make([]component.Export, 0, len(def.Exports))
	for _, exp := range def.Exports {
		exports = append(exports, component.Export{Name: exp.Name, Impl: exp.Value})
	}
	return component.NewModule(exports...)
}
