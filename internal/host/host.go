// Package host defines the engine's contract with the reactivity framework
// that owns data binding and rendering once a component is handed over.
package host

import "github.com/vk/lazykit/internal/dom"

// Host is the surface the engine consumes from the reactivity framework.
type Host interface {
	// RegisterComponentFactory makes a loaded implementation available under
	// the component's name before any element using it is activated.
	RegisterComponentFactory(name string, impl any)

	// ActivateSubtree asks the framework to (re)scan root and take ownership
	// of the bindings beneath it.
	ActivateSubtree(root dom.Element)
}
