package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/testutil"
)

type fixture struct {
	doc   *dom.MemoryDocument
	el    *dom.MemoryElement
	idle  *testutil.ManualIdle
	vis   *testutil.ManualVisibility
	media *testutil.ManualMedia
}

func newFixture(t *testing.T) *fixture {
	doc := dom.NewMemoryDocument()
	t.Cleanup(doc.Close)
	return &fixture{
		doc:   doc,
		el:    dom.NewElement("div"),
		idle:  &testutil.ManualIdle{},
		vis:   testutil.NewManualVisibility(),
		media: testutil.NewManualMedia(),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Document:   f.doc,
		Element:    f.el,
		EventName:  "lz-load-1",
		Idle:       f.idle,
		Visibility: f.vis,
		Media:      f.media,
	}
}

// resolvesImmediately asserts the composite needs zero suspension.
func resolvesImmediately(t *testing.T, expr string, f *fixture) {
	t.Helper()
	g := Resolve(context.Background(), expr, f.deps())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoErrorf(t, g.Wait(ctx), "expression %q should resolve without suspension", expr)
}

func TestResolve_DefaultTokens(t *testing.T) {
	for _, expr := range []string{"", "immediate", "eager", "immediate|eager", " immediate "} {
		t.Run("expr="+expr, func(t *testing.T) {
			resolvesImmediately(t, expr, newFixture(t))
		})
	}
}

func TestResolve_UnknownTokensAreIgnored(t *testing.T) {
	resolvesImmediately(t, "hover", newFixture(t))
	resolvesImmediately(t, "hover|bogus(arg)", newFixture(t))
}

func TestResolve_SingleGates(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		f := newFixture(t)
		g := Resolve(context.Background(), "idle", f.deps())

		errCh := make(chan error, 1)
		go func() { errCh <- g.Wait(context.Background()) }()

		select {
		case <-errCh:
			t.Fatal("idle gate resolved before idle fired")
		case <-time.After(50 * time.Millisecond):
		}

		f.idle.FireIdle()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("idle gate never resolved")
		}
	})

	t.Run("visible with root margin", func(t *testing.T) {
		f := newFixture(t)
		g := Resolve(context.Background(), "visible(100px 0px)", f.deps())
		assert.Equal(t, "100px 0px", f.vis.Margin(f.el))

		f.vis.Show(f.el)
		assert.NoError(t, g.Wait(context.Background()))
	})

	t.Run("visible without options", func(t *testing.T) {
		f := newFixture(t)
		g := Resolve(context.Background(), "visible", f.deps())
		assert.Equal(t, "", f.vis.Margin(f.el))

		f.vis.Show(f.el)
		assert.NoError(t, g.Wait(context.Background()))
	})

	t.Run("media", func(t *testing.T) {
		f := newFixture(t)
		f.media.SetMatches("min-width: 768px", true)
		g := Resolve(context.Background(), "media(min-width: 768px)", f.deps())
		assert.NoError(t, g.Wait(context.Background()))
	})

	t.Run("event uses the instance event name", func(t *testing.T) {
		f := newFixture(t)
		g := Resolve(context.Background(), "event", f.deps())

		errCh := make(chan error, 1)
		go func() { errCh <- g.Wait(context.Background()) }()

		f.doc.DispatchEvent("lz-load-1")
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("event gate never resolved")
		}
	})
}

func TestResolve_CombinedRequirementsNeedAll(t *testing.T) {
	f := newFixture(t)
	g := Resolve(context.Background(), "idle|media(min-width: 600px)", f.deps())

	errCh := make(chan error, 1)
	go func() { errCh <- g.Wait(context.Background()) }()

	f.idle.FireIdle()
	select {
	case <-errCh:
		t.Fatal("composite resolved with only the idle requirement satisfied")
	case <-time.After(50 * time.Millisecond):
	}

	f.media.SetMatches("min-width: 600px", true)
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("composite never resolved after both requirements")
	}
}

func TestResolve_WhitespaceTolerant(t *testing.T) {
	f := newFixture(t)
	f.media.SetMatches("min-width: 600px", true)
	g := Resolve(context.Background(), " idle | media(min-width: 600px) ", f.deps())

	errCh := make(chan error, 1)
	go func() { errCh <- g.Wait(context.Background()) }()

	f.idle.FireIdle()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("gate never resolved")
	}
}
