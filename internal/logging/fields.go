package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldReason     = "reason"
	FieldEvent      = "event"

	// Fold settings.
	FieldLanguage         = "language"
	FieldTabSize          = "tab_size"
	FieldMinimumRangeSize = "minimum_range_size"
	FieldJobs             = "jobs"
	FieldFormat           = "format"

	// Statistics fields.
	FieldLines           = "lines"
	FieldRanges          = "ranges"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldElapsed         = "elapsed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
