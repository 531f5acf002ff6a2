package trie

// literalChild returns the child node for an exact segment, creating it on
// first use.
func (n *node[T]) literalChild(seg string) *node[T] {
	if n.literal == nil {
		n.literal = make(map[string]*node[T])
	}

	child := n.literal[seg]
	if child == nil {
		child = new(node[T])
		n.literal[seg] = child
	}

	return child
}

// paramChild returns the single parametric child, creating it on first use.
// Patterns with different parameter names or regexes share the same child;
// the per-entry bindings keep them apart.
func (n *node[T]) paramChild() *node[T] {
	if n.param == nil {
		n.param = new(node[T])
	}

	return n.param
}

// wildcardChild returns the single catch-all child, creating it on first use.
func (n *node[T]) wildcardChild() *node[T] {
	if n.wildcard == nil {
		n.wildcard = new(node[T])
	}

	return n.wildcard
}

func (n *node[T]) addEntry(method string, e entry[T]) {
	if n.methods == nil {
		n.methods = make(map[string][]entry[T])
	}

	n.methods[method] = append(n.methods[method], e)
}

// entries returns the terminal entries for the method, falling back to the
// wild method bucket when the exact method has none.
func (n *node[T]) entries(method string) []entry[T] {
	if es, ok := n.methods[method]; ok {
		return es
	}

	return n.methods[MethodWild]
}

// findAll collects every match reachable from n at the given segment index.
// The append order at each node is: catch-all entries, the parametric
// branch, the exact literal branch, and the node's own terminal entries.
func (n *node[T]) findAll(segments []string, index int, method string, matches []Match[T]) []Match[T] {
	if n.wildcard != nil && index < len(segments) {
		// A catch-all consumes the rest of the path, so it never descends
		for _, e := range n.wildcard.entries(method) {
			matches = append(matches, e.match(segments))
		}
	}

	if n.param != nil {
		if index < len(segments) {
			matches = n.param.findAll(segments, index+1, method, matches)
		} else {
			// The path stops just short of a trailing parameter. Routes whose
			// final binding is a plain capture still match, with the
			// parameter absent from the result.
			for _, e := range n.param.entries(method) {
				if e.optionalTail(index) {
					matches = append(matches, e.match(segments))
				}
			}
		}
	}

	if index < len(segments) {
		if child := n.literal[segments[index]]; child != nil {
			matches = child.findAll(segments, index+1, method, matches)
		}
	} else {
		for _, e := range n.entries(method) {
			matches = append(matches, e.match(segments))
		}
	}

	return matches
}

// find returns the first match in findAll order, stopping the traversal as
// soon as one is found.
func (n *node[T]) find(segments []string, index int, method string) (Match[T], bool) {
	if n.wildcard != nil && index < len(segments) {
		if es := n.wildcard.entries(method); len(es) > 0 {
			return es[0].match(segments), true
		}
	}

	if n.param != nil {
		if index < len(segments) {
			if m, ok := n.param.find(segments, index+1, method); ok {
				return m, true
			}
		} else {
			for _, e := range n.param.entries(method) {
				if e.optionalTail(index) {
					return e.match(segments), true
				}
			}
		}
	}

	if index < len(segments) {
		if child := n.literal[segments[index]]; child != nil {
			if m, ok := child.find(segments, index+1, method); ok {
				return m, true
			}
		}
	} else if es := n.entries(method); len(es) > 0 {
		return es[0].match(segments), true
	}

	var zero Match[T]

	return zero, false
}

// optionalTail reports whether the entry's pattern ends with a plain named
// parameter at the given position. Only those entries match a path that is
// one segment shorter than the pattern; a regex parameter needs a segment to
// test, so it is never optional.
func (e entry[T]) optionalTail(index int) bool {
	if len(e.bindings) == 0 {
		return false
	}

	last := e.bindings[len(e.bindings)-1]

	return last.kind == bindName && last.index == index
}
