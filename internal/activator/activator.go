// Package activator hands a prepared element back to the host framework.
// The attribute sequence matters: the lazy-load marker goes first so
// re-entrant discovery can never reprocess the element, the data-binding
// attribute is removed and re-set so hosts that cache attribute presence see
// a fresh binding, and subtree activation is deferred one scheduling turn so
// the host's own mutation observation notices the changes before activation
// runs.
package activator

import (
	"context"

	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/host"
	"github.com/vk/lazykit/internal/platform"
)

// Activate transitions el from host-ignored to host-managed. The component's
// implementation must already be registered with the host when this is
// called.
func Activate(ctx context.Context, el dom.Element, cfg *config.Config, h host.Host, d platform.Deferrer) {
	ctxlog.FromContext(ctx).Debug("Activating element.", "dataAttr", cfg.DataAttribute())

	el.RemoveAttribute(cfg.LoadAttribute())

	if expr, ok := el.GetAttribute(cfg.DataAttribute()); ok {
		el.RemoveAttribute(cfg.DataAttribute())
		el.SetAttribute(cfg.DataAttribute(), expr)
	}

	el.RemoveAttribute(cfg.RootAttribute)

	d.Defer(func() {
		h.ActivateSubtree(el)
	})
}
