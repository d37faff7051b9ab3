package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/indentfold/internal/cli"
	"github.com/yaklabco/indentfold/internal/configloader"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "files errored", err: cli.ErrFilesErrored, want: cli.ExitFilesErrored},
		{name: "usage", err: &cli.UsageError{Err: errors.New("bad flag")}, want: cli.ExitInvalidUsage},
		{
			name: "wrapped usage",
			err:  fmt.Errorf("run: %w", &cli.UsageError{Err: errors.New("bad flag")}),
			want: cli.ExitInvalidUsage,
		},
		{name: "config", err: &cli.ConfigError{Err: errors.New("bad yaml")}, want: cli.ExitConfigError},
		{
			name: "validation",
			err:  &configloader.ValidationError{Field: "tab_size", Message: "must be positive"},
			want: cli.ExitConfigError,
		},
		{name: "not found", err: fmt.Errorf("read x: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "is directory", err: fmt.Errorf("%w: x", fsutil.ErrIsDirectory), want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	clean := runner.NewResult(runner.FileOutcome{Path: "a.py"})
	if got := cli.ExitCodeFromResult(clean); got != cli.ExitSuccess {
		t.Errorf("clean result: got %d, want %d", got, cli.ExitSuccess)
	}

	failed := runner.NewResult(runner.FileOutcome{Path: "b.py", Error: fsutil.ErrPermissionDenied})
	if got := cli.ExitCodeFromResult(failed); got != cli.ExitFilesErrored {
		t.Errorf("errored result: got %d, want %d", got, cli.ExitFilesErrored)
	}
}
