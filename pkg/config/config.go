// Package config defines core configuration types for indentfold.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "strings"

// DefaultTabSize is the tab width used when neither config nor flags set one.
const DefaultTabSize = 4

// DefaultMinimumRangeSize mirrors fold.DefaultMinimumRangeSize. It is
// duplicated here so config stays free of algorithm imports.
const DefaultMinimumRangeSize = 1

// OutputFormat specifies the output format for folding results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// LanguageConfig holds per-language overrides, keyed by language name.
// Nil fields fall back to the top-level values.
type LanguageConfig struct {
	TabSize          *int `yaml:"tab_size,omitempty" toml:"tab_size,omitempty"`
	MinimumRangeSize *int `yaml:"minimum_range_size,omitempty" toml:"minimum_range_size,omitempty"`
}

// Config is the root configuration structure for indentfold.
type Config struct {
	// TabSize is the tab width used to measure indentation.
	TabSize int `yaml:"tab_size" toml:"tab_size"`

	// MinimumRangeSize drops ranges whose end-start distance is smaller.
	// Nil means DefaultMinimumRangeSize; a pointer keeps an explicit 0.
	MinimumRangeSize *int `yaml:"minimum_range_size,omitempty" toml:"minimum_range_size,omitempty"`

	// Languages contains per-language overrides keyed by language name
	// (e.g. "go", "python", "yaml"). Keys are matched case-insensitively.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty" toml:"languages,omitempty"`

	// Extensions restricts discovery to these file extensions.
	// Empty means every non-binary file.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// IncludeVendor disables the vendored-path filter during discovery.
	IncludeVendor bool `yaml:"include_vendor,omitempty" toml:"include_vendor,omitempty"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Output is a file path to write the report to instead of stdout.
	Output string `yaml:"-" toml:"-"`

	// ShowContext prints the text of each range's start line.
	ShowContext bool `yaml:"-" toml:"-"`
}

// Settings are the effective folding parameters for one file.
type Settings struct {
	Language         string
	TabSize          int
	MinimumRangeSize int
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		TabSize:   DefaultTabSize,
		Languages: make(map[string]LanguageConfig),
		Format:    FormatText,
		Jobs:      0, // 0 means use GOMAXPROCS
	}
}

// EffectiveMinimumRangeSize returns MinimumRangeSize or its default.
func (c *Config) EffectiveMinimumRangeSize() int {
	if c == nil || c.MinimumRangeSize == nil {
		return DefaultMinimumRangeSize
	}
	return *c.MinimumRangeSize
}

// Resolve returns the folding settings for a file in the given language.
func (c *Config) Resolve(language string) Settings {
	settings := Settings{
		Language:         language,
		TabSize:          DefaultTabSize,
		MinimumRangeSize: c.EffectiveMinimumRangeSize(),
	}
	if c == nil {
		return settings
	}
	if c.TabSize > 0 {
		settings.TabSize = c.TabSize
	}

	lang, ok := c.language(language)
	if !ok {
		return settings
	}
	if lang.TabSize != nil {
		settings.TabSize = *lang.TabSize
	}
	if lang.MinimumRangeSize != nil {
		settings.MinimumRangeSize = *lang.MinimumRangeSize
	}
	return settings
}

// language looks up a language override, exact key first.
func (c *Config) language(name string) (LanguageConfig, bool) {
	if name == "" || len(c.Languages) == 0 {
		return LanguageConfig{}, false
	}
	if lang, ok := c.Languages[name]; ok {
		return lang, true
	}
	for key, lang := range c.Languages {
		if strings.EqualFold(key, name) {
			return lang, true
		}
	}
	return LanguageConfig{}, false
}

// IntPtr returns a pointer to v, for building configs in code.
func IntPtr(v int) *int {
	return &v
}
