// Package langdetect names the language of a source file so per-language
// fold settings can be applied. It uses go-enry for filename, extension,
// shebang and classifier detection, with a few content heuristics for
// buffers that arrive without a name.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

const langBash = "bash"

// classifierCandidates bounds the classifier to languages where indentation
// folding is commonly used.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "YAML", "JSON",
	"HTML", "CSS", "Markdown", "Makefile", "Dockerfile",
}

// DetectFile returns the language of a file from its path and content.
// Returns Text if detection fails or confidence is low.
func DetectFile(path string, content []byte) string {
	name := filepath.Base(path)

	if path != "" {
		// Exact names (Makefile, Dockerfile) beat extensions.
		if lang, safe := enry.GetLanguageByFilename(name); safe {
			return normalize(lang)
		}
		if lang := detectByExtension(name, content); lang != "" {
			return lang
		}
	}

	return Detect(content)
}

// detectByExtension narrows an ambiguous extension (.h, .md, .ts, .yaml)
// with enry's content heuristics, then the classifier, restricted to the
// languages the extension allows. Returns "" when the extension is unknown.
func detectByExtension(name string, content []byte) string {
	candidates := enry.GetLanguagesByExtension(name, content, nil)
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return normalize(candidates[0])
	}

	if matched := enry.GetLanguagesByContent(name, content, candidates); len(matched) > 0 {
		if len(matched) == 1 {
			return normalize(matched[0])
		}
		candidates = matched
	}

	if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
		return normalize(lang)
	}
	return normalize(candidates[0])
}

// Detect returns the language of an unnamed buffer.
// Returns Text if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(content) == 0 {
		return Text
	}

	// Shebang first, it is the only reliable signal without a filename.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// normalize converts go-enry language names to config keys.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

// IsKnown reports whether name is a language key DetectFile can return,
// such as "python" or "makefile". Config validation uses it to flag typos
// in per-language overrides.
func IsKnown(name string) bool {
	if name == Text || name == langBash {
		return true
	}
	_, ok := enry.GetLanguageByAlias(strings.ToLower(name))
	return ok
}
