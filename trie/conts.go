// Package trie is a high performance storage for HTTP routes.
//
// Routes are indexed by whole path segments. Every node keeps its literal
// children in a map, plus at most one parametric child and at most one
// catch-all child, so lookup cost grows with the segment count of the
// request path, never with the number of registered routes.
package trie

// MethodWild wild HTTP method
const MethodWild = "*"

const (
	segParamStart = '{'
	segParamEnd   = '}'
	segWild       = "*"
)

const (
	bindName bindingKind = iota
	bindRegex
	bindCatchAll
)
