package engine

import "github.com/vk/lazykit/internal/dom"

// Instance is one element's trip through the pipeline. Instances are
// ephemeral: created at discovery, discarded once activation completes. Many
// instances may share one component registration; the single-flight loader
// coordinates them.
type Instance struct {
	// Name is the component name parsed from the data-binding expression.
	Name string
	// Strategy is the effective strategy expression, after the default has
	// been applied to a valueless load attribute.
	Strategy string
	// Element is a non-owned reference; the document owns its lifetime.
	Element dom.Element
	// ID scopes the instance's event name. It is the element's own id when
	// present, else an engine-generated monotonic integer.
	ID string
}
