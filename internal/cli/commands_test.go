package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/indentfold/internal/cli"
	"github.com/yaklabco/indentfold/internal/configloader"
)

const pythonSource = "def f():\n    if x:\n        return 1\n    return 2\n"

type jsonRange struct {
	Start int `json:"startLineNumber"`
	End   int `json:"endLineNumber"`
}

type jsonReport struct {
	Files []struct {
		Path     string      `json:"path"`
		Language string      `json:"language"`
		TabSize  int         `json:"tabSize"`
		Ranges   []jsonRange `json:"ranges"`
	} `json:"files"`
}

// isolate runs the test in a fresh directory with no user or environment
// configuration in reach.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for name := range configloader.ListEnvVars() {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Chdir(dir)

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return out.String(), err
}

func decodeReport(t *testing.T, data []byte) jsonReport {
	t.Helper()

	var report jsonReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, data)
	}
	return report
}

func TestRangesCommand_Text(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "ranges", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	for _, want := range []string{"app.py", "python", "1-5", "2-3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "1-5") > strings.Index(out, "2-3") {
		t.Errorf("expected ranges listed top to bottom:\n%s", out)
	}
}

func TestRangesCommand_JSON(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "ranges", "--format", "json", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	report := decodeReport(t, []byte(out))
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(report.Files))
	}

	got := report.Files[0].Ranges
	want := []jsonRange{{Start: 2, End: 3}, {Start: 1, End: 5}}
	if len(got) != len(want) {
		t.Fatalf("ranges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRangesCommand_TabSizeFlag(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "ranges", "--format", "json", "--tab-size", "2", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	report := decodeReport(t, []byte(out))
	if report.Files[0].TabSize != 2 {
		t.Errorf("tabSize = %d, want 2", report.Files[0].TabSize)
	}
}

func TestRangesCommand_MinSizeFiltersRanges(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "ranges", "--format", "json", "--min-size", "2", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	ranges := decodeReport(t, []byte(out)).Files[0].Ranges
	if len(ranges) != 1 || ranges[0] != (jsonRange{Start: 1, End: 5}) {
		t.Errorf("ranges = %v, want only 1-5", ranges)
	}
}

func TestRangesCommand_ProjectConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)
	writeFile(t, filepath.Join(dir, ".indentfold.yml"), "tab_size: 4\nlanguages:\n  python:\n    tab_size: 8\n")

	out, err := execute(t, "", "ranges", "--format", "json", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	if got := decodeReport(t, []byte(out)).Files[0].TabSize; got != 8 {
		t.Errorf("tabSize = %d, want 8 from the python override", got)
	}
}

func TestRangesCommand_Stdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, pythonSource, "ranges", "--format", "json", "--stdin-name", "app.py", "-")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}

	report := decodeReport(t, []byte(out))
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(report.Files))
	}
	if report.Files[0].Language != "python" {
		t.Errorf("language = %q, want python", report.Files[0].Language)
	}
	if len(report.Files[0].Ranges) != 2 {
		t.Errorf("expected 2 ranges, got %v", report.Files[0].Ranges)
	}
}

func TestRangesCommand_Output(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "ranges", "--format", "json", "-o", "folds.json", "app.py")
	if err != nil {
		t.Fatalf("ranges failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "folds.json"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(decodeReport(t, data).Files) != 1 {
		t.Errorf("expected one file in written report:\n%s", data)
	}
}

func TestRangesCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"ranges", "--format", "xml"}},
		{name: "zero tab size", args: []string{"ranges", "--tab-size", "0"}},
		{name: "unknown sort", args: []string{"ranges", "--sort", "size"}},
		{name: "dash with paths", args: []string{"ranges", "-", "app.py"}},
		{name: "unknown flag", args: []string{"ranges", "--bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := execute(t, "", tt.args...)
			if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
				t.Errorf("exit code = %d, want %d (err: %v)", got, cli.ExitInvalidUsage, err)
			}
		})
	}
}

func TestRangesCommand_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".indentfold.yml"), "tab_size: -2\n")

	_, err := execute(t, "", "ranges")
	if got := cli.ExitCode(err); got != cli.ExitConfigError {
		t.Errorf("exit code = %d, want %d (err: %v)", got, cli.ExitConfigError, err)
	}
}

func TestIndentCommand(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "indent", "app.py")
	if err != nil {
		t.Fatalf("indent failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header plus one line per source line, including the final blank one.
	if len(lines) != 6 {
		t.Fatalf("expected 6 output lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[3], "  8  ") {
		t.Errorf("expected indent 8 on line 3, got %q", lines[3])
	}
	if !strings.Contains(lines[5], "-") {
		t.Errorf("expected blank marker on last line, got %q", lines[5])
	}
}

func TestIndentCommand_MissingFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "indent", "missing.py")
	if got := cli.ExitCode(err); got != cli.ExitIOError {
		t.Errorf("exit code = %d, want %d (err: %v)", got, cli.ExitIOError, err)
	}
}

func TestLanguagesCommand(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".indentfold.yml"), "tab_size: 4\nlanguages:\n  yaml:\n    tab_size: 2\n")
	writeFile(t, filepath.Join(dir, "app.py"), pythonSource)

	out, err := execute(t, "", "languages", "--format", "json")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}

	var infos []struct {
		Language string `json:"language"`
		TabSize  int    `json:"tabSize"`
		Source   string `json:"source"`
	}
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(infos) != 2 || infos[1].Language != "yaml" || infos[1].TabSize != 2 {
		t.Errorf("unexpected languages: %+v", infos)
	}

	out, err = execute(t, "", "languages", "app.py")
	if err != nil {
		t.Fatalf("languages with files failed: %v", err)
	}
	if !strings.Contains(out, "python") || !strings.Contains(out, "detected") {
		t.Errorf("expected detected python row:\n%s", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".indentfold.yml"), "tab_size: 2\n")

	out, err := execute(t, "", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "tab_size: 2") {
		t.Errorf("expected merged tab size in output:\n%s", out)
	}

	out, err = execute(t, "", "config", "--format", "toml")
	if err != nil {
		t.Fatalf("config --format toml failed: %v", err)
	}
	if !strings.Contains(out, "tab_size = 2") {
		t.Errorf("expected toml output:\n%s", out)
	}

	out, err = execute(t, "", "config", "--paths")
	if err != nil {
		t.Fatalf("config --paths failed: %v", err)
	}
	if !strings.Contains(out, ".indentfold.yml") {
		t.Errorf("expected project config path:\n%s", out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)

	if _, err := execute(t, "", "init", "--format", "toml"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".indentfold.toml"))
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(data), "tab_size = 4") {
		t.Errorf("unexpected template:\n%s", data)
	}

	_, err = execute(t, "", "init", "--format", "toml")
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("second init: exit code = %d, want %d", got, cli.ExitInvalidUsage)
	}

	if _, err := execute(t, "", "init", "--format", "toml", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestHelpListsEnvironment(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(out, "INDENTFOLD_TAB_SIZE") {
		t.Errorf("expected environment variables in help:\n%s", out)
	}
}

func TestHelpListsSubcommandFlags(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "ranges", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"Flags:", "--tab-size int", "(default 4)", "-o, --output string", "Global Flags:", "--color string"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Environment:") {
		t.Errorf("subcommand help should not list environment variables:\n%s", out)
	}
}
