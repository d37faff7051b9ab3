package runner_test

import (
	"testing"

	"github.com/yaklabco/indentfold/pkg/runner"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{name: "base name pattern at root", path: "app.min.js", pattern: "*.min.js", want: true},
		{name: "base name pattern nested", path: "web/static/app.min.js", pattern: "*.min.js", want: true},
		{name: "base name pattern miss", path: "web/app.js", pattern: "*.min.js", want: false},
		{name: "anchored pattern", path: "src/a.py", pattern: "src/*.py", want: true},
		{name: "anchored pattern does not cross dirs", path: "src/x/a.py", pattern: "src/*.py", want: false},
		{name: "trailing double star", path: "dist/js/a.js", pattern: "dist/**", want: true},
		{name: "trailing double star matches dir itself", path: "dist", pattern: "dist/**", want: true},
		{name: "trailing double star needs prefix", path: "distant/a.js", pattern: "dist/**", want: false},
		{name: "leading double star", path: "a/b/gen", pattern: "**/gen", want: true},
		{name: "leading double star at root", path: "gen", pattern: "**/gen", want: true},
		{name: "middle double star", path: "src/a/b/c_test.go", pattern: "src/**/*_test.go", want: true},
		{name: "middle double star zero segments", path: "src/c_test.go", pattern: "src/**/*_test.go", want: true},
		{name: "middle double star miss", path: "lib/c_test.go", pattern: "src/**/*_test.go", want: false},
		{name: "lone double star", path: "anything/at/all", pattern: "**", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := runner.MatchGlob(tt.path, tt.pattern); got != tt.want {
				t.Errorf("MatchGlob(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestValidateGlob(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"*.py", "src/**", "**/gen/*.go", "a?c"} {
		if err := runner.ValidateGlob(pattern); err != nil {
			t.Errorf("ValidateGlob(%q) = %v, want nil", pattern, err)
		}
	}
	for _, pattern := range []string{"[", "src/[a-"} {
		if err := runner.ValidateGlob(pattern); err == nil {
			t.Errorf("ValidateGlob(%q) = nil, want error", pattern)
		}
	}
}
