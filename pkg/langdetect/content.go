package langdetect

import (
	"bytes"
	"strings"
)

const (
	langGo         = "go"
	langPython     = "python"
	langJSON       = "json"
	langYAML       = "yaml"
	langDockerfile = "dockerfile"
	langMakefile   = "makefile"
)

// detectByPattern checks for patterns that are highly indicative of a language.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return langGo
	case looksLikePython(string(content)):
		return langPython
	case looksLikeJSON(trimmed):
		return langJSON
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(content, []byte("\nRUN ")):
		return langDockerfile
	case looksLikeMakefile(content):
		return langMakefile
	case looksLikeYAML(content):
		return langYAML
	}

	return ""
}

func looksLikePython(s string) bool {
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

// looksLikeMakefile wants a "target:" line followed by a tab-indented recipe.
func looksLikeMakefile(content []byte) bool {
	lines := bytes.Split(content, []byte("\n"))
	for i := 0; i+1 < len(lines); i++ {
		line := lines[i]
		if len(line) == 0 || line[0] == '\t' || line[0] == '#' {
			continue
		}
		colon := bytes.IndexByte(line, ':')
		if colon <= 0 || bytes.Contains(line[:colon], []byte(" ")) {
			continue
		}
		if bytes.HasPrefix(line[colon:], []byte(":=")) {
			continue
		}
		if bytes.HasPrefix(lines[i+1], []byte("\t")) {
			return true
		}
	}
	return false
}

// looksLikeYAML counts key: value pairs and list items.
func looksLikeYAML(content []byte) bool {
	count := 0

	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if (bytes.Contains(line, []byte(": ")) || bytes.HasSuffix(line, []byte(":"))) &&
			!bytes.ContainsAny(line, "({;") &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}

	return count >= 2
}
