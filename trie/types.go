package trie

import "regexp"

type bindingKind uint8

// binding describes how one named parameter is recovered from the matched
// segment sequence. A plain binding copies the segment at index, a regex
// binding runs a compiled pattern against it, and a catch-all binding rejoins
// every segment from index to the end of the path.
type binding struct {
	kind   bindingKind
	index  int
	name   string
	regex  *regexp.Regexp
	groups []string
}

// entry is one registered route: the caller's payload plus the ordered
// bindings of its pattern. Entries registered at the same node and method
// are kept in insertion order.
type entry[T any] struct {
	payload  T
	bindings []binding
}

type node[T any] struct {
	literal  map[string]*node[T]
	param    *node[T]
	wildcard *node[T]
	methods  map[string][]entry[T]
}

// Tree is a routes storage indexed by path segments.
//
// A Tree is built with sequential Insert calls before serving begins and is
// read-only afterwards, so lookups need no synchronization. To change routes
// at runtime, build a replacement Tree aside and swap the reference.
type Tree[T any] struct {
	root *node[T]
}

// Match is a single lookup result: the registered payload and the named
// parameters extracted from the request path. Params has no required keys;
// an optional parameter that did not bind is simply absent.
type Match[T any] struct {
	Payload T
	Params  map[string]string
}
