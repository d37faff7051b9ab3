package configloader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/langdetect"
	"github.com/yaklabco/indentfold/pkg/runner"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages.go.tab_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown languages).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatSummary: true,
}

// Validate checks a configuration for errors and warnings.
// A zero TabSize means "unset" and is not an error.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.TabSize != 0 {
		if err := fold.ValidateTabSize(cfg.TabSize); err != nil {
			result.addError("tab_size", cfg.TabSize, err.Error())
		}
	}

	if cfg.MinimumRangeSize != nil {
		if err := fold.ValidateMinimumRangeSize(*cfg.MinimumRangeSize); err != nil {
			result.addError("minimum_range_size", *cfg.MinimumRangeSize, err.Error())
		}
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, table, json, summary", cfg.Format))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateLanguages(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateLanguages checks per-language overrides.
func validateLanguages(cfg *config.Config, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Languages))
	for name := range cfg.Languages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lang := cfg.Languages[name]
		field := "languages." + name

		if !langdetect.IsKnown(name) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown language %q; the override will never match", name),
			})
		}

		// Unlike the top level, an explicit per-language 0 is an error.
		if lang.TabSize != nil {
			if err := fold.ValidateTabSize(*lang.TabSize); err != nil {
				result.addError(field+".tab_size", *lang.TabSize, err.Error())
			}
		}
		if lang.MinimumRangeSize != nil {
			if err := fold.ValidateMinimumRangeSize(*lang.MinimumRangeSize); err != nil {
				result.addError(field+".minimum_range_size", *lang.MinimumRangeSize, err.Error())
			}
		}
	}
}

// validateExtensions rejects extensions that can never match a file name.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if ext == "" || ext == "." || strings.ContainsAny(ext, `/\`) {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext,
				fmt.Sprintf("invalid extension %q", ext))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.ValidateGlob(pattern); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern,
				fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
