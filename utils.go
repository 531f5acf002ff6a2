package weft

import "strings"

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic("path must begin with '/' in path '" + path + "'")
	case len(path) > 1 && strings.HasSuffix(path, "/"):
		panic("path must not end with '/' in path '" + path + "'")
	}
}
