package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/indentfold/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the start line text next to each range.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// DetailedSummary replaces the one-line text summary with a block
	// that breaks ranges down by language.
	DetailedSummary bool

	// ShowSkipped lists binary and generated files that were not scanned.
	ShowSkipped bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// SortBy orders files in structured output. Empty keeps path order.
	SortBy analysis.SortField

	// TopFiles limits the file table of the summary format.
	TopFiles int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// OmitTimestamp drops the report timestamp from structured output.
	OmitTimestamp bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: false,
		ShowSummary: true,
		Compact:     false,
		TopFiles:    defaultTopFiles,
	}
}
