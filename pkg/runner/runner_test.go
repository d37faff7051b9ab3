package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/indentfold/pkg/config"
	"github.com/yaklabco/indentfold/pkg/fold"
	"github.com/yaklabco/indentfold/pkg/fsutil"
	"github.com/yaklabco/indentfold/pkg/runner"
)

const pythonSource = "def f():\n    if x:\n        return 1\n    return 2\n"

func TestNew(t *testing.T) {
	t.Parallel()

	r := runner.New()
	require.NotNil(t, r)
	assert.NotNil(t, r.Detect)
	assert.False(t, r.SkipGenerated)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasRanges())
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.py": pythonSource})

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.Equal(t, filepath.Join(dir, "main.py"), outcome.Path)
	assert.Equal(t, "python", outcome.Language)
	assert.Equal(t, 5, outcome.LineCount)
	assert.Equal(t, []fold.Range{
		{StartLineNumber: 2, EndLineNumber: 3},
		{StartLineNumber: 1, EndLineNumber: 5},
	}, outcome.Ranges, "the trailing blank line folds with the body")
	require.NotNil(t, outcome.Snapshot)
	assert.Equal(t, "def f():", outcome.Snapshot.LineText(1))

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesWithRanges)
	assert.Equal(t, 2, result.Stats.RangesTotal)
	assert.Equal(t, 2, result.Stats.RangesByLanguage["python"])
}

func TestRunner_Run_PerLanguageSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go": "func f() {\n\tx()\n}\n",
		"b.py": "def f():\n  x()\n",
	})

	cfg := config.NewConfig()
	cfg.MinimumRangeSize = config.IntPtr(0)
	cfg.Languages["go"] = config.LanguageConfig{TabSize: config.IntPtr(8), MinimumRangeSize: config.IntPtr(2)}

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	goFile, pyFile := result.Files[0], result.Files[1]

	assert.Equal(t, "go", goFile.Language)
	assert.Equal(t, config.Settings{Language: "go", TabSize: 8, MinimumRangeSize: 2}, goFile.Settings)
	assert.Empty(t, goFile.Ranges, "single-line body is below the go minimum")

	assert.Equal(t, "python", pyFile.Language)
	assert.Equal(t, config.Settings{Language: "python", TabSize: 4, MinimumRangeSize: 0}, pyFile.Settings)
	assert.Equal(t, []fold.Range{{StartLineNumber: 1, EndLineNumber: 3}}, pyFile.Ranges)
}

func TestRunner_Run_SkipsBinaryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"blob.bin": "\x00\x01\x02\x03  x\n",
		"ok.py":    pythonSource,
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.True(t, result.Files[0].Skipped())
	require.ErrorIs(t, result.Files[0].SkipReason, runner.ErrBinaryFile)
	assert.Nil(t, result.Files[0].Snapshot)

	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRunner_Run_SkipGenerated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"package-lock.json": "{\n  \"a\": {\n    \"b\": 1\n  }\n}\n",
	})

	r := runner.New()
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesProcessed)

	r.SkipGenerated = true
	result, err = r.Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].SkipReason, runner.ErrGeneratedFile)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		name := filepath.Join("pkg", string(rune('a'+i)), "mod.py")
		files[filepath.ToSlash(name)] = pythonSource
	}
	writeTree(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := runner.New().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)
		return result
	}

	serial, parallel := run(1), run(8)
	require.Len(t, parallel.Files, len(serial.Files))

	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Ranges, parallel.Files[i].Ranges)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": pythonSource})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_UsesDetector(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "x\n  y\n", "b.txt": "x\n  y\n"})

	var calls atomic.Int32
	r := &runner.Runner{Detect: func(_ string, _ []byte) string {
		calls.Add(1)
		return "custom"
	}}

	cfg := config.NewConfig()
	cfg.Languages["custom"] = config.LanguageConfig{MinimumRangeSize: config.IntPtr(5)}

	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	for _, outcome := range result.Files {
		assert.Equal(t, "custom", outcome.Language)
		assert.Empty(t, outcome.Ranges)
	}
}

func TestRunner_ProcessFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": pythonSource})

	r := runner.New()

	outcome := r.ProcessFile(context.Background(), filepath.Join(dir, "a.py"), nil)
	require.NoError(t, outcome.Error)
	assert.Len(t, outcome.Ranges, 2)

	missing := r.ProcessFile(context.Background(), filepath.Join(dir, "gone.py"), nil)
	require.ErrorIs(t, missing.Error, fsutil.ErrNotFound)
	assert.Nil(t, missing.Snapshot)
}

func TestRunner_ProcessContent_InvalidSettings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Languages["python"] = config.LanguageConfig{TabSize: config.IntPtr(0)}

	outcome := runner.New().ProcessContent(context.Background(), "a.py", []byte("\tx\n"), cfg)
	require.ErrorIs(t, outcome.Error, fold.ErrInvalidTabSize)
}

func TestRunner_Run_ReadErrorsDoNotAbort(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"locked.py": pythonSource, "open.py": pythonSource})
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked.py"), 0o000))

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)

	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, errors.Is(result.Files[0].Error, fsutil.ErrPermissionDenied))
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{".py"}
	cfg.Ignore = []string{"dist/**"}
	cfg.FollowSymlinks = true
	cfg.IncludeVendor = true
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"src"})
	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, []string{".py"}, opts.Extensions)
	assert.Equal(t, []string{"dist/**"}, opts.ExcludeGlobs)
	assert.True(t, opts.FollowSymlinks)
	assert.True(t, opts.IncludeVendor)
	assert.Equal(t, 3, opts.Jobs)
	assert.Same(t, cfg, opts.Config)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	r := runner.New()
	cfg := config.NewConfig()
	ctx := context.Background()

	result := runner.NewResult(
		r.ProcessContent(ctx, "a.py", []byte(pythonSource), cfg),
		r.ProcessContent(ctx, "b.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00"), cfg),
		runner.FileOutcome{Path: "c.py", Error: fsutil.ErrNotFound},
	)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 2, result.Stats.RangesTotal)
	assert.Equal(t, 2, result.Stats.RangesByLanguage["python"])
	assert.True(t, result.HasErrors())
}
