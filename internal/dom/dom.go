package dom

import "context"

// Element is the engine's non-owned view of a node in the host document tree.
// The document owns element lifetime; the engine only reads and rewrites
// attributes on elements it was handed.
type Element interface {
	// GetAttribute returns the value of the named attribute and whether the
	// attribute is present at all.
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	HasAttribute(name string) bool
}

// Mutation is one batch of tree changes. Added holds the roots of inserted
// subtrees, in insertion order. Records that do not concern element insertion
// are never delivered; the filtering is part of the Document contract so the
// discovery watcher stays testable without a real DOM.
type Mutation struct {
	Added []Element
}

// Document is the engine's view of the page: subtree queries, mutation
// observation, and document-scoped custom events.
type Document interface {
	// ElementsWithAttribute returns every element carrying the named
	// attribute, in document order.
	ElementsWithAttribute(name string) []Element

	// Mutations subscribes to tree changes. The channel closes when ctx is
	// cancelled. Mutations are delivered in commit order.
	Mutations(ctx context.Context) <-chan Mutation

	// DispatchEvent fires a document-scoped custom event by name.
	DispatchEvent(name string)

	// AddEventListener registers fn for the named custom event. The returned
	// func removes the listener; it is safe to call more than once.
	AddEventListener(name string, fn func()) (remove func())
}
