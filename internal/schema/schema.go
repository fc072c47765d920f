package schema

import "github.com/hashicorp/hcl/v2"

// EngineSettings represents the optional `engine` block of a manifest file.
// Every attribute is optional; unset attributes keep the stock defaults.
type EngineSettings struct {
	Prefix          string `hcl:"prefix,optional"`
	HostPrefix      string `hcl:"host_prefix,optional"`
	RootAttribute   string `hcl:"root_attribute,optional"`
	InlineAttribute string `hcl:"inline_attribute,optional"`
	DefaultStrategy string `hcl:"default_strategy,optional"`
	FallbackDelayMS int    `hcl:"fallback_delay_ms,optional"`
}

// ExportsBlock holds a component's exports as free-form attributes. The
// attribute name is the export name; the attribute value is the export's
// implementation reference. Declaration order is significant, so the block is
// kept as a raw body and ordered during translation.
type ExportsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Component represents a `component` block from a manifest file: a named
// module declared at configuration time.
type Component struct {
	Name    string        `hcl:"name,label"`
	Src     string        `hcl:"src,optional"`
	Exports *ExportsBlock `hcl:"exports,block"`
}

// Manifest represents the top-level structure of a configuration file,
// containing the engine settings and all declared components.
type Manifest struct {
	Engine     *EngineSettings `hcl:"engine,block"`
	Components []*Component    `hcl:"component,block"`
	Body       hcl.Body        `hcl:",remain"`
}
