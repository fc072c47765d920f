// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"fmt"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/schema"
)

// applyEngineSettings overlays the attributes set in an `engine` block onto
// an existing engine configuration. Unset attributes leave the current value
// untouched, so blocks from later files override earlier ones attribute by
// attribute.
func applyEngineSettings(cfg *config.Config, s *schema.EngineSettings) {
	if s.Prefix != "" {
		cfg.Prefix = s.Prefix
	}
	if s.HostPrefix != "" {
		cfg.HostPrefix = s.HostPrefix
	}
	if s.RootAttribute != "" {
		cfg.RootAttribute = s.RootAttribute
	}
	if s.InlineAttribute != "" {
		cfg.InlineAttribute = s.InlineAttribute
	}
	if s.DefaultStrategy != "" {
		cfg.DefaultStrategy = s.DefaultStrategy
	}
	if s.FallbackDelayMS > 0 {
		cfg.FallbackDelay = time.Duration(s.FallbackDelayMS) * time.Millisecond
	}
}

// translateComponent converts an HCL component block into the agnostic model.
// Export attributes are re-ordered by their source position because the
// loader's last selection fallback is "first export declared", and
// JustAttributes returns a map with no inherent order.
func translateComponent(s *schema.Component) (*config.ComponentDefinition, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("component block has an empty name label")
	}

	def := &config.ComponentDefinition{
		Name: s.Name,
		Src:  s.Src,
	}
	if s.Exports == nil || s.Exports.Body == nil {
		return def, nil
	}

	attrs, diags := s.Exports.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid exports for component '%s': %w", s.Name, diags)
	}

	ordered := make([]string, 0, len(attrs))
	for name := range attrs {
		ordered = append(ordered, name)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return attrs[ordered[i]].Range.Start.Byte < attrs[ordered[j]].Range.Start.Byte
	})

	for _, name := range ordered {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for export '%s' of component '%s': %w", name, s.Name, diags)
		}
		strVal, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("cannot convert export '%s' of component '%s' to string: %w", name, s.Name, err)
		}
		def.Exports = append(def.Exports, config.ExportDefinition{
			Name:  name,
			Value: strVal.AsString(),
		})
	}
	return def, nil
}
