package trie

import "github.com/valyala/bytebufferpool"

// match converts the entry to a lookup result, extracting its named
// parameters from the request segments.
func (e entry[T]) match(segments []string) Match[T] {
	return Match[T]{
		Payload: e.payload,
		Params:  extract(segments, e.bindings),
	}
}

// extract rebuilds the name to value mapping described by the bindings.
// A binding whose segment is missing, or whose regex does not match, omits
// its parameter instead of failing the lookup.
func extract(segments []string, bindings []binding) map[string]string {
	params := make(map[string]string, len(bindings))

	for _, b := range bindings {
		switch b.kind {
		case bindName:
			if b.index < len(segments) {
				params[b.name] = segments[b.index]
			}

		case bindRegex:
			if b.index >= len(segments) {
				continue
			}

			m := b.regex.FindStringSubmatch(segments[b.index])
			if m == nil {
				continue
			}

			if len(b.groups) == 0 {
				// No named groups, the whole segment binds to the name
				params[b.name] = m[0]
				continue
			}

			for i, group := range b.regex.SubexpNames() {
				if i > 0 && group != "" {
					params[group] = m[i]
				}
			}

		case bindCatchAll:
			params[b.name] = joinTail(segments, b.index)
		}
	}

	return params
}

// joinTail rejoins the segments from start to the end of the path with '/'.
func joinTail(segments []string, start int) string {
	if start >= len(segments) {
		return ""
	}

	if start == len(segments)-1 {
		return segments[start]
	}

	buf := bytebufferpool.Get()

	for i := start; i < len(segments); i++ {
		if i > start {
			buf.WriteByte('/')
		}
		buf.WriteString(segments[i])
	}

	tail := buf.String()
	bytebufferpool.Put(buf)

	return tail
}
