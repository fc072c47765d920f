package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/go-cmp/cmp"

	"github.com/vk/lazykit/internal/dom"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>shop</title></head>
<body>
  <div id="c1" lz-load="visible" x-data="card()" x-ignore>
    <span>inner text</span>
  </div>
  <div id="c2" lz-load x-data="cart()" lz-load-src="./cart.js"></div>
  <p>plain paragraph</p>
</body>
</html>`

func TestParse_FindsMarkedElements(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePage))
	require.NoError(t, err)
	defer doc.Close()

	marked := doc.ElementsWithAttribute("lz-load")
	require.Len(t, marked, 2)

	first, ok := marked[0].GetAttribute("id")
	require.True(t, ok)
	assert.Equal(t, "c1", first)

	want := map[string]string{
		"id":       "c1",
		"lz-load":  "visible",
		"x-data":   "card()",
		"x-ignore": "",
	}
	got := marked[0].(*dom.MemoryElement).Attributes()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("marked element attributes mismatch (-want +got):\n%s", diff)
	}

	inline := doc.ElementsWithAttribute("lz-load-src")
	require.Len(t, inline, 1)
	src, _ := inline[0].GetAttribute("lz-load-src")
	assert.Equal(t, "./cart.js", src)
}

func TestParse_ValuelessAttributeIsPresentAndEmpty(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<div lz-load x-data="a()"></div>`))
	require.NoError(t, err)
	defer doc.Close()

	marked := doc.ElementsWithAttribute("lz-load")
	require.Len(t, marked, 1)
	val, ok := marked[0].GetAttribute("lz-load")
	assert.True(t, ok)
	assert.Empty(t, val)
}

func TestParseFile_MissingPage(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.html")
	require.Error(t, err)
}
