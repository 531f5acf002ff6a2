package trie

import (
	"regexp"
	"strings"
)

// splitPath decomposes a path into its non-empty segments. Leading, trailing
// and repeated slashes produce empty tokens and are discarded, so "/a/",
// "//a" and "/a" all split to ["a"] and "/" splits to none.
func splitPath(path string) []string {
	n := strings.Count(path, "/")
	if n == 0 {
		n = 1
	}

	segments := make([]string, 0, n)

	start := 0
	for start < len(path) {
		if path[start] == '/' {
			start++
			continue
		}

		end := start
		for end < len(path) && path[end] != '/' {
			end++
		}

		segments = append(segments, path[start:end])
		start = end
	}

	return segments
}

// parseParam splits the body of a '{...}' segment into its name and optional
// pattern. The pattern goes after the first ':', so a regex may itself
// contain ':' without being cut.
func parseParam(seg string) (name, pattern string) {
	body := seg[1 : len(seg)-1]

	sn := strings.SplitN(body, ":", 2)
	if len(sn) > 1 {
		return sn[0], sn[1]
	}

	return body, ""
}

// compileParamRegex anchors the pattern to the whole segment and collects the
// names of its named capture groups, if any.
func compileParamRegex(pattern string) (*regexp.Regexp, []string, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, nil, err
	}

	var groups []string
	for i, name := range re.SubexpNames() {
		if i > 0 && name != "" {
			groups = append(groups, name)
		}
	}

	return re, groups, nil
}
