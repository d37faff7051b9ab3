package analysis

import (
	"time"

	"github.com/yaklabco/indentfold/pkg/fold"
)

// Report contains pre-computed views of a folding run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp,omitzero"`

	// Files holds one entry per discovered file.
	Files []FileAnalysis `json:"files"`

	// ByLanguage groups ranges by detected language.
	ByLanguage []LanguageAnalysis `json:"byLanguage,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`
}

// FileAnalysis contains the folding result for a single file.
type FileAnalysis struct {
	Path             string       `json:"path"`
	Language         string       `json:"language,omitempty"`
	TabSize          int          `json:"tabSize,omitempty"`
	MinimumRangeSize int          `json:"minimumRangeSize"`
	Lines            int          `json:"lines"`
	RangeCount       int          `json:"rangeCount"`
	MaxDepth         int          `json:"maxDepth"`
	Ranges           []fold.Range `json:"ranges,omitempty"`
	Skipped          string       `json:"skipped,omitempty"`
	Error            string       `json:"error,omitempty"`
}

// Scanned reports whether the file was read and folded.
func (f FileAnalysis) Scanned() bool {
	return f.Skipped == "" && f.Error == ""
}

// LanguageAnalysis contains aggregated data for a single language.
type LanguageAnalysis struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	Ranges   int    `json:"ranges"`
	Lines    int    `json:"lines"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesDiscovered"`
	FilesScanned    int `json:"filesScanned"`
	FilesWithRanges int `json:"filesWithRanges"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	Ranges          int `json:"totalRanges"`
	Lines           int `json:"totalLines"`
	MaxDepth        int `json:"maxDepth"`
}

// HasRanges returns true if any file produced a range.
func (t Totals) HasRanges() bool {
	return t.Ranges > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}
