package app

import (
	"log/slog"
	"sync/atomic"

	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/host"
)

// logHost is the host framework stand-in for the page runner: it logs every
// factory registration and subtree activation and keeps counters for the run
// summary.
type logHost struct {
	logger      *slog.Logger
	factories   atomic.Int64
	activations atomic.Int64
}

var _ host.Host = (*logHost)(nil)

func newLogHost(logger *slog.Logger) *logHost {
	return &logHost{logger: logger}
}

func (h *logHost) RegisterComponentFactory(name string, impl any) {
	h.factories.Add(1)
	h.logger.Info("Component factory registered.", "name", name, "impl", impl)
}

func (h *logHost) ActivateSubtree(root dom.Element) {
	h.activations.Add(1)
	id, _ := root.GetAttribute("id")
	h.logger.Info("Subtree activated.", "id", id)
}
