// Package config defines the engine's configuration surface: the attribute
// prefixes, the default strategy, and the format-agnostic model a
// configuration loader produces. The surface only renames attributes and the
// default gate; it never changes engine behavior beyond string substitution.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Defaults for the declarative attribute surface.
const (
	DefaultPrefix          = "lz-"
	DefaultHostPrefix      = "x-"
	DefaultRootAttribute   = "x-ignore"
	DefaultStrategy        = "immediate"
	DefaultFallbackDelayMS = 200
)

// Config is the engine's attribute and strategy configuration, supplied once
// at initialization.
type Config struct {
	// Prefix namespaces the engine's own attributes (load, load-src, events).
	Prefix string
	// HostPrefix namespaces the host framework's attributes (data binding).
	HostPrefix string
	// RootAttribute is the host's ignore marker removed during activation.
	RootAttribute string
	// InlineAttribute overrides the derived load-src attribute when set.
	InlineAttribute string
	// DefaultStrategy applies when an element's load attribute has no value.
	DefaultStrategy string
	// FallbackDelay bounds the delay-based stand-ins for missing platform
	// primitives.
	FallbackDelay time.Duration
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Prefix:          DefaultPrefix,
		HostPrefix:      DefaultHostPrefix,
		RootAttribute:   DefaultRootAttribute,
		DefaultStrategy: DefaultStrategy,
		FallbackDelay:   DefaultFallbackDelayMS * time.Millisecond,
	}
}

// Validate rejects configurations that would produce colliding or empty
// attribute names.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("config: prefix must not be empty")
	}
	if c.HostPrefix == "" {
		return errors.New("config: host prefix must not be empty")
	}
	if c.RootAttribute == "" {
		return errors.New("config: root attribute must not be empty")
	}
	if c.Prefix == c.HostPrefix {
		return fmt.Errorf("config: prefix %q collides with host prefix", c.Prefix)
	}
	return nil
}

// LoadAttribute names the lazy-load marker carrying the strategy expression.
func (c *Config) LoadAttribute() string {
	return c.Prefix + "load"
}

// SrcAttribute names the inline-module source marker.
func (c *Config) SrcAttribute() string {
	if c.InlineAttribute != "" {
		return c.InlineAttribute
	}
	return c.Prefix + "load-src"
}

// DataAttribute names the host framework's data-binding attribute.
func (c *Config) DataAttribute() string {
	return c.HostPrefix + "data"
}

// EventName derives the per-instance custom event name for the event gate.
// Page authors dispatch this event to trigger loading manually, so the
// derivation is part of the public contract.
func (c *Config) EventName(instanceID string) string {
	return c.Prefix + "load-" + instanceID
}

// ComponentName extracts the component name from a data-binding expression:
// the substring before the first '(', trimmed.
func ComponentName(dataExpr string) string {
	name := dataExpr
	if i := strings.IndexByte(dataExpr, '('); i >= 0 {
		name = dataExpr[:i]
	}
	return strings.TrimSpace(name)
}
