package cli

import (
	"errors"

	"github.com/yaklabco/indentfold/internal/configloader"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/runner"
)

// Exit codes for indentfold.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFilesErrored indicates the run completed but some files could not be read.
	ExitFilesErrored = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesErrored is returned when a run completed with unreadable files.
var ErrFilesErrored = errors.New("some files could not be processed")

// UsageError marks an error caused by invalid flags or arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError marks an error raised while loading or validating configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitFilesErrored
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var configErr *ConfigError
	var validationErr *configloader.ValidationError

	switch {
	case errors.Is(err, ErrFilesErrored):
		return ExitFilesErrored
	case errors.As(err, &usageErr):
		return ExitInvalidUsage
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
