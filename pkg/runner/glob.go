package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// ValidateGlob reports a malformed pattern. "**" segments are accepted.
func ValidateGlob(pattern string) error {
	for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
		if segment == "**" {
			continue
		}
		if _, err := path.Match(segment, ""); err != nil {
			return err //nolint:wrapcheck // path.ErrBadPattern is the useful part.
		}
	}
	return nil
}

// MatchGlob matches a slash or OS separated relative path against a glob.
// "*" and "?" stay within one segment; "**" matches any number of segments.
// A pattern without "/" also matches against the base name, so "*.min.js"
// excludes minified files at any depth.
func MatchGlob(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(name)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(name, "/"), strings.Split(pattern, "/"))
}

func matchSegments(names, patterns []string) bool {
	for len(patterns) > 0 {
		if patterns[0] == "**" {
			rest := patterns[1:]
			// Trailing "**" swallows everything below, including nothing.
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(names); i++ {
				if matchSegments(names[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(names) == 0 {
			return false
		}
		if ok, err := path.Match(patterns[0], names[0]); err != nil || !ok {
			return false
		}
		names, patterns = names[1:], patterns[1:]
	}

	return len(names) == 0
}
