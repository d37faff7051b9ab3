package cli_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/indentfold/internal/cli"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "indentfold" {
		t.Errorf("expected Use to be 'indentfold', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"ranges", "indent", "watch", "languages", "config", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestRangesCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	rangesCmd, _, err := cmd.Find([]string{"ranges"})
	if err != nil {
		t.Fatalf("ranges command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"tab-size",
		"min-size",
		"jobs",
		"ignore",
		"ext",
		"include-vendor",
		"follow-symlinks",
		"skip-generated",
		"show-skipped",
		"context",
		"no-summary",
		"stats",
		"compact",
		"sort",
		"output",
		"stdin-name",
	}

	for _, flagName := range expectedFlags {
		flag := rangesCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on ranges command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("1.2.3")) {
		t.Errorf("expected version in output, got %q", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("abc123")) {
		t.Errorf("expected commit in output, got %q", out.String())
	}
}

func TestRangesCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	rangesCmd, _, err := cmd.Find([]string{"ranges"})
	if err != nil {
		t.Fatalf("ranges command not found: %v", err)
	}

	// Test that ranges command accepts arbitrary args (file paths).
	err = rangesCmd.Args(rangesCmd, []string{"app.py", "Makefile", "src/"})
	if err != nil {
		t.Errorf("ranges command should accept arbitrary args, got error: %v", err)
	}
}

func TestIndentCommandRequiresOneFile(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	indentCmd, _, err := cmd.Find([]string{"indent"})
	if err != nil {
		t.Fatalf("indent command not found: %v", err)
	}

	for _, args := range [][]string{nil, {"a.py", "b.py"}} {
		err := indentCmd.Args(indentCmd, args)
		if cli.ExitCode(err) != cli.ExitInvalidUsage {
			t.Errorf("args %v: expected usage error, got %v", args, err)
		}
	}

	if err := indentCmd.Args(indentCmd, []string{"a.py"}); err != nil {
		t.Errorf("expected single file to be accepted, got %v", err)
	}
}
