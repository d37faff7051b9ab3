package runner

import (
	"errors"

	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/snapshot"
)

// Skip reasons recorded in FileOutcome.SkipReason.
var (
	// ErrBinaryFile marks a file whose content is not text.
	ErrBinaryFile = errors.New("binary file")

	// ErrGeneratedFile marks a machine-generated file when Runner.SkipGenerated is set.
	ErrGeneratedFile = errors.New("generated file")
)

// FileOutcome is the folding result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the detected language name, "text" when unknown.
	Language string

	// Settings are the effective fold parameters used for this file.
	Settings config.Settings

	// LineCount is the number of lines in the file.
	LineCount int

	// Ranges are the folding ranges in scan order (descending start line).
	Ranges []fold.Range

	// Snapshot is the line-indexed content. Nil when skipped or errored.
	Snapshot *snapshot.FileSnapshot

	// SkipReason is set when the file was intentionally not scanned.
	SkipReason error

	// Error is set if the file could not be processed.
	Error error
}

// Skipped reports whether the file was intentionally not scanned.
func (o FileOutcome) Skipped() bool {
	return o.SkipReason != nil
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files scanned for ranges.
	FilesProcessed int

	// FilesSkipped is the number of binary or generated files not scanned.
	FilesSkipped int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithRanges is the number of files with at least one range.
	FilesWithRanges int

	// RangesTotal is the number of ranges across all files.
	RangesTotal int

	// RangesByLanguage maps language names to range counts.
	RangesByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasRanges reports whether any ranges were found.
func (r *Result) HasRanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.RangesTotal > 0
}

func newStats() Stats {
	return Stats{
		RangesByLanguage: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped():
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++

	count := len(outcome.Ranges)
	if count == 0 {
		return
	}
	r.Stats.FilesWithRanges++
	r.Stats.RangesTotal += count
	r.Stats.RangesByLanguage[outcome.Language] += count
}

// NewResult builds a Result from outcomes computed outside Run, such as a
// buffer read from stdin or a single file recomputed by a watcher.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
