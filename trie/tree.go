package trie

import "fmt"

// ConfigError reports an invalid route pattern at registration time.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid route pattern '%s': %s", e.Path, e.Reason)
}

// New returns an empty routes storage.
func New[T any]() *Tree[T] {
	return &Tree[T]{
		root: new(node[T]),
	}
}

// Insert registers a payload under the given method and path pattern.
//
// Pattern segments are classified as literal, parametric or catch-all:
//
//	/users/list          literal segments, matched by exact string
//	/users/{id}          named parameter, binds the segment text to "id"
//	/users/{id:[0-9]+}   parameter with a pattern, may extract named groups
//	/files/{rest:*}      named catch-all, binds the remaining segments
//	/files/*             anonymous catch-all, binds nothing
//
// A catch-all must be the final segment. Registering the same method and
// path again appends another entry instead of replacing the previous one,
// so overlapping registrations from mounted sub-routers coexist.
//
// WARNING: Not concurrency-safe!
func (t *Tree[T]) Insert(method, path string, payload T) error {
	segments := splitPath(path)

	var bindings []binding
	n := t.root

	for i, seg := range segments {
		switch {
		case seg == segWild:
			if i != len(segments)-1 {
				return &ConfigError{Path: path, Reason: "catch-all must be the final segment"}
			}

			n = n.wildcardChild()

		case seg[0] == segParamStart:
			if seg[len(seg)-1] != segParamEnd || len(seg) < 3 {
				return &ConfigError{Path: path, Reason: "malformed parameter segment '" + seg + "'"}
			}

			name, pattern := parseParam(seg)

			switch {
			case pattern == segWild:
				if i != len(segments)-1 {
					return &ConfigError{Path: path, Reason: "catch-all must be the final segment"}
				}
				if name == "" {
					return &ConfigError{Path: path, Reason: "catch-all must be named with a non-empty name"}
				}

				n = n.wildcardChild()
				bindings = append(bindings, binding{kind: bindCatchAll, index: i, name: name})

			case pattern != "":
				if name == "" {
					return &ConfigError{Path: path, Reason: "parameter must be named with a non-empty name"}
				}

				re, groups, err := compileParamRegex(pattern)
				if err != nil {
					return &ConfigError{Path: path, Reason: "invalid parameter pattern: " + err.Error()}
				}

				n = n.paramChild()
				bindings = append(bindings, binding{kind: bindRegex, index: i, name: name, regex: re, groups: groups})

			default:
				if name == "" {
					return &ConfigError{Path: path, Reason: "parameter must be named with a non-empty name"}
				}

				n = n.paramChild()
				bindings = append(bindings, binding{kind: bindName, index: i, name: name})
			}

		default:
			n = n.literalChild(seg)
		}
	}

	n.addEntry(method, entry[T]{payload: payload, bindings: bindings})

	return nil
}

// FindAll returns every registered entry whose pattern matches the given
// method and path, converted to Match values in traversal order.
//
// The order is a fixed contract: at every node the catch-all entries come
// first, then the matches found through the parametric child, then the
// matches through the exact literal child, and finally the node's own
// terminal entries once the path is exhausted. A catch-all therefore
// precedes a more specific literal route; callers that want a different
// ranking must choose among the returned matches themselves.
//
// An unmatched path yields an empty result, never an error.
func (t *Tree[T]) FindAll(method, path string) []Match[T] {
	return t.root.findAll(splitPath(path), 0, method, nil)
}

// Find returns the first match in FindAll order, avoiding the collection of
// the remaining ones. The boolean reports whether any pattern matched.
func (t *Tree[T]) Find(method, path string) (Match[T], bool) {
	return t.root.find(splitPath(path), 0, method)
}
