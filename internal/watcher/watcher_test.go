package watcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/dom"
)

type hookRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *hookRecorder) record(kind string, el dom.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, _ := el.GetAttribute("id")
	r.calls = append(r.calls, kind+":"+id)
}

func (r *hookRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *hookRecorder) hooks() Hooks {
	return Hooks{
		OnInline:     func(_ context.Context, el dom.Element) { r.record("inline", el) },
		OnDiscovered: func(_ context.Context, el dom.Element) { r.record("discovered", el) },
	}
}

func startWatcher(t *testing.T) (*dom.MemoryDocument, *hookRecorder) {
	t.Helper()
	doc := dom.NewMemoryDocument()
	t.Cleanup(doc.Close)

	rec := &hookRecorder{}
	w := New(doc, config.Default(), rec.hooks())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	w.Start(ctx)
	t.Cleanup(w.Stop)
	return doc, rec
}

func TestWatcher_DiscoversInsertedElement(t *testing.T) {
	doc, rec := startWatcher(t)

	el := dom.NewElement("div")
	el.SetAttribute("id", "a")
	el.SetAttribute("lz-load", "idle")
	doc.Root().AppendChild(el)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"discovered:a"}, rec.snapshot())
}

func TestWatcher_InlineBeforeDiscovered(t *testing.T) {
	doc, rec := startWatcher(t)

	el := dom.NewElement("div")
	el.SetAttribute("id", "b")
	el.SetAttribute("lz-load-src", "./cart.js")
	el.SetAttribute("lz-load", "visible")
	doc.Root().AppendChild(el)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"inline:b", "discovered:b"}, rec.snapshot())
}

func TestWatcher_IgnoresUnmarkedElements(t *testing.T) {
	doc, rec := startWatcher(t)

	plain := dom.NewElement("div")
	plain.SetAttribute("id", "plain")
	doc.Root().AppendChild(plain)

	marked := dom.NewElement("div")
	marked.SetAttribute("id", "marked")
	marked.SetAttribute("lz-load", "")
	doc.Root().AppendChild(marked)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"discovered:marked"}, rec.snapshot())
}

func TestWatcher_DeliveryOrder(t *testing.T) {
	doc, rec := startWatcher(t)

	for _, id := range []string{"one", "two", "three"} {
		el := dom.NewElement("div")
		el.SetAttribute("id", id)
		el.SetAttribute("lz-load", "")
		doc.Root().AppendChild(el)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"discovered:one", "discovered:two", "discovered:three"}, rec.snapshot())
}

func TestWatcher_StopEndsProcessing(t *testing.T) {
	doc := dom.NewMemoryDocument()
	defer doc.Close()

	rec := &hookRecorder{}
	w := New(doc, config.Default(), rec.hooks())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Stop()

	el := dom.NewElement("div")
	el.SetAttribute("lz-load", "")
	doc.Root().AppendChild(el)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
