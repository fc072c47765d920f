// Package strategy parses a pipe-separated strategy expression into its
// requirement gates and composes them with AND semantics: the component loads
// only after every declared requirement is satisfied.
package strategy

import (
	"context"
	"strings"

	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/gate"
	"github.com/vk/lazykit/internal/platform"
)

// Deps carries the readiness sources a strategy expression can bind to.
type Deps struct {
	Document   dom.Document
	Element    dom.Element
	EventName  string
	Idle       platform.IdleScheduler
	Visibility platform.VisibilityObserver
	Media      platform.MediaMatcher
}

// Resolve parses expr and returns the composite readiness gate. Tokens equal
// to "immediate" or "eager" name the default behavior, not a real gate, and
// are dropped. Unrecognized tokens are ignored — satisfied by absence — so a
// typo degrades to loading earlier, never to a wedged element. An empty
// requirement set resolves immediately.
func Resolve(ctx context.Context, expr string, deps Deps) gate.Gate {
	var gates []gate.Gate

	for _, token := range strings.Split(expr, "|") {
		token = strings.TrimSpace(token)
		switch {
		case token == "", token == "immediate", token == "eager":
			// Default behavior; no gate.
		case token == "idle":
			gates = append(gates, gate.Idle(deps.Idle))
		case strings.HasPrefix(token, "visible"):
			gates = append(gates, gate.Visible(deps.Visibility, deps.Element, parenArg(token)))
		case strings.HasPrefix(token, "media"):
			gates = append(gates, gate.Media(deps.Media, parenArg(token)))
		case token == "event":
			gates = append(gates, gate.Event(deps.Document, deps.EventName))
		default:
			ctxlog.FromContext(ctx).Debug("Ignoring unknown requirement token.", "token", token)
		}
	}

	return gate.All(gates...)
}

// parenArg extracts the parenthesized argument from a token such as
// "visible(100px 0px)" or "media(min-width: 600px)". Tokens without an
// argument yield the empty string.
func parenArg(token string) string {
	open := strings.IndexByte(token, '(')
	end := strings.LastIndexByte(token, ')')
	if open < 0 || end <= open {
		return ""
	}
	return strings.TrimSpace(token[open+1 : end])
}
