package testutil

import (
	"sync"

	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/host"
)

// FactoryCall records one RegisterComponentFactory invocation.
type FactoryCall struct {
	Name string
	Impl any
}

// RecordingHost is a host.Host that records every call in arrival order and
// keeps a merged event log so tests can assert cross-call ordering, e.g.
// "factory registered before subtree activated".
type RecordingHost struct {
	mu          sync.Mutex
	factories   []FactoryCall
	activations []dom.Element
	events      []string
}

var _ host.Host = (*RecordingHost)(nil)

// NewRecordingHost creates an empty recording host.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{}
}

// RegisterComponentFactory implements host.Host.
func (h *RecordingHost) RegisterComponentFactory(name string, impl any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.factories = append(h.factories, FactoryCall{Name: name, Impl: impl})
	h.events = append(h.events, "factory:"+name)
}

// ActivateSubtree implements host.Host.
func (h *RecordingHost) ActivateSubtree(root dom.Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activations = append(h.activations, root)
	name := ""
	if v, ok := root.GetAttribute("id"); ok {
		name = v
	}
	h.events = append(h.events, "activate:"+name)
}

// Factories returns a copy of the recorded factory registrations.
func (h *RecordingHost) Factories() []FactoryCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]FactoryCall, len(h.factories))
	copy(out, h.factories)
	return out
}

// Activations returns a copy of the recorded subtree activations.
func (h *RecordingHost) Activations() []dom.Element {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]dom.Element, len(h.activations))
	copy(out, h.activations)
	return out
}

// Events returns the merged ordered event log. Factories append
// "factory:<name>"; activations append "activate:<element id>".
func (h *RecordingHost) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	copy(out, h.events)
	return out
}
