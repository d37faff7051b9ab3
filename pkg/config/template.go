package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes commented per-language examples.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// languageExample is a documented per-language override in the full template.
type languageExample struct {
	name    string
	comment string
	tabSize int
}

// templateLanguages are the examples written by the full template.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templateLanguages = []languageExample{
	{name: "go", comment: "gofmt indents with tabs", tabSize: 8},
	{name: "makefile", comment: "recipes must start with a tab", tabSize: 8},
	{name: "python", comment: "PEP 8 uses four spaces", tabSize: 4},
	{name: "yaml", comment: "two-space nesting is conventional", tabSize: 2},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts.Full), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts.Full), nil
	default:
		return nil, fmt.Errorf("unknown template format %q; must be yaml or toml", opts.Format)
	}
}

func generateYAMLTemplate(full bool) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Width of a tab character when measuring indentation
tab_size: 4

# Drop ranges that would hide fewer lines than this
# minimum_range_size: 1

# Only scan files with these extensions (empty = all text files)
# extensions:
#   - .py
#   - .yaml

# File patterns to ignore (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# Scan vendored directories too
# include_vendor: false

# Traverse directory symlinks
# follow_symlinks: false
`)

	if !full {
		return buf.Bytes()
	}

	buf.WriteString("\n# Per-language overrides, keyed by detected language name\nlanguages:\n")
	for _, lang := range templateLanguages {
		fmt.Fprintf(&buf, "  # %s\n", lang.comment)
		fmt.Fprintf(&buf, "  %s:\n", lang.name)
		fmt.Fprintf(&buf, "    tab_size: %d\n", lang.tabSize)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(full bool) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Width of a tab character when measuring indentation
tab_size = 4

# Drop ranges that would hide fewer lines than this
# minimum_range_size = 1

# Only scan files with these extensions (empty = all text files)
# extensions = [".py", ".yaml"]

# File patterns to ignore (glob patterns)
# ignore = ["node_modules/**", "dist/**"]

# include_vendor = false
# follow_symlinks = false
`)

	if !full {
		return buf.Bytes()
	}

	buf.WriteString("\n# Per-language overrides, keyed by detected language name\n")
	for _, lang := range templateLanguages {
		fmt.Fprintf(&buf, "\n# %s\n", lang.comment)
		fmt.Fprintf(&buf, "[languages.%s]\n", lang.name)
		fmt.Fprintf(&buf, "tab_size = %d\n", lang.tabSize)
	}

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return strings.Join([]string{
		"# indentfold configuration",
		"# See: https://github.com/yaklabco/indentfold",
	}, "\n")
}
