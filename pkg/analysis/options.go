package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by range count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByDepth sorts by deepest range nesting, then range count.
	SortByDepth SortField = "depth"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByDepth:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeRanges keeps each file's range list in the report.
	IncludeRanges bool

	// IncludeByLanguage includes the per-language analysis.
	IncludeByLanguage bool

	// SortBy specifies how to sort Files and ByLanguage.
	// The zero value keeps files in path order.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// OmitTimestamp leaves Report.Timestamp zero so identical results
	// encode to identical bytes.
	OmitTimestamp bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeRanges:     true,
		IncludeByLanguage: true,
	}
}
