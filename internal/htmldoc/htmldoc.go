// Package htmldoc parses HTML pages into the in-memory document model. It is
// the bridge between a page on disk and the engine's document interface.
package htmldoc

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/vk/lazykit/internal/dom"
)

// Parse reads an HTML document from r and builds an in-memory document
// mirroring its element tree. Text, comments, and doctype nodes are dropped;
// only elements and their attributes matter to the engine.
func Parse(r io.Reader) (*dom.MemoryDocument, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := dom.NewMemoryDocument()
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if el := convert(child); el != nil {
			doc.Root().AppendChild(el)
		}
	}
	return doc, nil
}

// ParseFile parses the HTML page at path.
func ParseFile(path string) (*dom.MemoryDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", path, err)
	}
	return doc, nil
}

// convert recursively translates an html.Node subtree into memory elements.
func convert(n *html.Node) *dom.MemoryElement {
	if n.Type != html.ElementNode {
		return nil
	}

	el := dom.NewElement(n.Data)
	for _, attr := range n.Attr {
		el.SetAttribute(attr.Key, attr.Val)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if converted := convert(child); converted != nil {
			el.AppendChild(converted)
		}
	}
	return el
}
