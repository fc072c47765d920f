package dom

import (
	"context"
	"sync"

	"github.com/vk/lazykit/internal/pubsub"
)

// MemoryDocument is an in-memory Document implementation. It backs the demo
// CLI (fed by the HTML adapter) and every test that exercises the discovery
// pipeline without a browser.
type MemoryDocument struct {
	root      *MemoryElement
	mutations *pubsub.Broker[Mutation]
	events    *pubsub.Broker[string]
}

// NewMemoryDocument creates an empty document with a detached root element.
func NewMemoryDocument() *MemoryDocument {
	d := &MemoryDocument{
		mutations: pubsub.NewBroker[Mutation](),
		events:    pubsub.NewBroker[string](),
	}
	d.root = &MemoryElement{tag: "root", attrs: map[string]string{}, doc: d}
	return d
}

// Root returns the document's root element.
func (d *MemoryDocument) Root() *MemoryElement {
	return d.root
}

// ElementsWithAttribute walks the tree depth-first and returns every element
// carrying the named attribute, in document order.
func (d *MemoryDocument) ElementsWithAttribute(name string) []Element {
	var out []Element
	d.root.walk(func(el *MemoryElement) {
		if el.HasAttribute(name) {
			out = append(out, el)
		}
	})
	return out
}

// Mutations subscribes to insertion batches.
func (d *MemoryDocument) Mutations(ctx context.Context) <-chan Mutation {
	return d.mutations.Subscribe(ctx)
}

// DispatchEvent fires a document-scoped custom event.
func (d *MemoryDocument) DispatchEvent(name string) {
	d.events.Publish(name)
}

// AddEventListener registers fn for the named event until the returned
// remove func is called.
func (d *MemoryDocument) AddEventListener(name string, fn func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	sub := d.events.Subscribe(ctx)
	go func() {
		for ev := range sub {
			if ev == name {
				fn()
			}
		}
	}()
	return cancel
}

// Close tears down the document's brokers. Tests only; a page document lives
// until process exit.
func (d *MemoryDocument) Close() {
	d.mutations.Close()
	d.events.Close()
}

// MemoryElement is the in-memory Element implementation.
type MemoryElement struct {
	tag string

	mu       sync.RWMutex
	attrs    map[string]string
	children []*MemoryElement
	doc      *MemoryDocument
}

var _ Element = (*MemoryElement)(nil)

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *MemoryElement {
	return &MemoryElement{tag: tag, attrs: map[string]string{}}
}

// Tag returns the element's tag name.
func (e *MemoryElement) Tag() string {
	return e.tag
}

// GetAttribute returns the attribute value and its presence.
func (e *MemoryElement) GetAttribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute sets or replaces an attribute.
func (e *MemoryElement) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// RemoveAttribute deletes an attribute; absent attributes are a no-op.
func (e *MemoryElement) RemoveAttribute(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, name)
}

// HasAttribute reports attribute presence.
func (e *MemoryElement) HasAttribute(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.attrs[name]
	return ok
}

// Attributes returns a copy of the element's attribute map.
func (e *MemoryElement) Attributes() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// AppendChild attaches child to e. If e is part of a document, the insertion
// is announced to mutation subscribers with child as the subtree root; this
// mirrors how a mutation observer reports one record per inserted root, not
// per descendant.
func (e *MemoryElement) AppendChild(child *MemoryElement) {
	e.mu.Lock()
	e.children = append(e.children, child)
	doc := e.doc
	e.mu.Unlock()

	if doc != nil {
		child.adopt(doc)
		doc.mutations.Publish(Mutation{Added: []Element{child}})
	}
}

// adopt recursively binds an inserted subtree to its document.
func (e *MemoryElement) adopt(doc *MemoryDocument) {
	e.mu.Lock()
	e.doc = doc
	children := make([]*MemoryElement, len(e.children))
	copy(children, e.children)
	e.mu.Unlock()

	for _, c := range children {
		c.adopt(doc)
	}
}

// walk visits e and all descendants depth-first.
func (e *MemoryElement) walk(visit func(*MemoryElement)) {
	visit(e)
	e.mu.RLock()
	children := make([]*MemoryElement, len(e.children))
	copy(children, e.children)
	e.mu.RUnlock()

	for _, c := range children {
		c.walk(visit)
	}
}
