package fold_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/indentfold/pkg/fold"
)

func TestComputeRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lines   []string
		tabSize int
		minSize int
		want    []fold.Range
	}{
		{
			name:    "empty buffer",
			lines:   nil,
			tabSize: 4,
			minSize: 1,
			want:    nil,
		},
		{
			name:    "function body",
			lines:   []string{"function f() {", "  return 1;", "}"},
			tabSize: 4,
			minSize: 1,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 2}},
		},
		{
			name:    "nested blocks",
			lines:   []string{"a", "  b", "    c", "  d", "e"},
			tabSize: 4,
			minSize: 1,
			want: []fold.Range{
				{StartLineNumber: 2, EndLineNumber: 3},
				{StartLineNumber: 1, EndLineNumber: 4},
			},
		},
		{
			name:    "block running to end of buffer",
			lines:   []string{"a", "  b", "  c"},
			tabSize: 4,
			minSize: 1,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 3}},
		},
		{
			name:    "multiple pops report one range",
			lines:   []string{"a", "      d", "    c", "  b"},
			tabSize: 4,
			minSize: 1,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 4}},
		},
		{
			name:    "staircase",
			lines:   []string{"a", "  b", "    c", "      d", "e"},
			tabSize: 4,
			minSize: 1,
			want: []fold.Range{
				{StartLineNumber: 3, EndLineNumber: 4},
				{StartLineNumber: 2, EndLineNumber: 4},
				{StartLineNumber: 1, EndLineNumber: 4},
			},
		},
		{
			name:    "blank lines inside block are folded",
			lines:   []string{"if x:", "    a", "", "    b", "c"},
			tabSize: 4,
			minSize: 1,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 4}},
		},
		{
			name:    "trailing blank lines before dedent are folded",
			lines:   []string{"a", "  b", "   ", "", "c"},
			tabSize: 4,
			minSize: 1,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 4}},
		},
		{
			name:    "sibling blocks",
			lines:   []string{"a", "  1", "b", "  2", "  3"},
			tabSize: 4,
			minSize: 1,
			want: []fold.Range{
				{StartLineNumber: 3, EndLineNumber: 5},
				{StartLineNumber: 1, EndLineNumber: 2},
			},
		},
		{
			name:    "tab indented body",
			lines:   []string{"func main() {", "\tfmt.Println()", "\tif x {", "\t\treturn", "\t}", "}"},
			tabSize: 4,
			minSize: 1,
			want: []fold.Range{
				{StartLineNumber: 3, EndLineNumber: 4},
				{StartLineNumber: 1, EndLineNumber: 5},
			},
		},
		{
			name:    "minimum size excludes single line body",
			lines:   []string{"function f() {", "  return 1;", "}"},
			tabSize: 4,
			minSize: 2,
			want:    nil,
		},
		{
			name:    "minimum size zero",
			lines:   []string{"a", "  b"},
			tabSize: 4,
			minSize: 0,
			want:    []fold.Range{{StartLineNumber: 1, EndLineNumber: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fold.ComputeRanges(fold.Lines(tt.lines), tt.tabSize, tt.minSize)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRanges_NoRanges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{name: "all blank", lines: []string{"", "   ", "\t", " \t "}},
		{name: "single blank line", lines: []string{""}},
		{name: "uniform zero indent", lines: []string{"a", "b", "c"}},
		{name: "uniform deep indent", lines: []string{"    a", "    b", "    c"}},
		{name: "strictly decreasing indent", lines: []string{"      a", "    b", "  c", "d"}},
		{name: "single line", lines: []string{"  only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, fold.ComputeRanges(fold.Lines(tt.lines), 4, 1))
		})
	}
}

func TestComputeRanges_MonotonicIndent(t *testing.T) {
	t.Parallel()

	// Each line deeper than the last: every line opens a block that runs to
	// the end of the buffer.
	increasing := fold.Lines{"a", "  b", "    c", "      d"}
	assert.Equal(t, []fold.Range{
		{StartLineNumber: 3, EndLineNumber: 4},
		{StartLineNumber: 2, EndLineNumber: 4},
		{StartLineNumber: 1, EndLineNumber: 4},
	}, fold.ComputeRanges(increasing, 4, 1))

	// The mirror image never closes a region.
	decreasing := fold.Lines{"      d", "    c", "  b", "a"}
	assert.Empty(t, fold.ComputeRanges(decreasing, 4, 1))
}

func TestComputeRanges_MinimumRangeSizeBoundary(t *testing.T) {
	t.Parallel()

	doc := fold.Lines{"a", "  b", "c"}

	for minSize := 0; minSize <= 1; minSize++ {
		assert.Equal(t, []fold.Range{{StartLineNumber: 1, EndLineNumber: 2}},
			fold.ComputeRanges(doc, 4, minSize), "minSize=%d", minSize)
	}
	for minSize := 2; minSize <= 4; minSize++ {
		assert.Empty(t, fold.ComputeRanges(doc, 4, minSize), "minSize=%d", minSize)
	}
}

func TestComputeRanges_Idempotent(t *testing.T) {
	t.Parallel()

	doc := randomDocument(rand.New(rand.NewSource(7)), 200)

	first := fold.ComputeRanges(doc, 4, 1)
	second := fold.ComputeRanges(doc, 4, 1)
	assert.Equal(t, first, second)
}

func TestComputeRanges_Bounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		doc := randomDocument(rng, rng.Intn(60))
		tabSize := 1 + rng.Intn(8)
		minSize := 1 + rng.Intn(3)

		for _, r := range fold.ComputeRanges(doc, tabSize, minSize) {
			assertRangeInBounds(t, r, doc.LineCount(), minSize)
		}
	}
}

func TestComputeRangesFunc_AccessorError(t *testing.T) {
	t.Parallel()

	errRead := errors.New("read failed")
	calls := 0

	ranges, err := fold.ComputeRangesFunc(5, func(line int) (string, error) {
		calls++
		if line == 2 {
			return "", errRead
		}
		return "  x", nil
	}, 4, 1)

	require.ErrorIs(t, err, errRead)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, ranges)
	assert.Equal(t, 4, calls, "scan should stop at the failing line")
}

func TestComputeRangesFunc_VisitsLinesBackward(t *testing.T) {
	t.Parallel()

	var visited []int
	_, err := fold.ComputeRangesFunc(4, func(line int) (string, error) {
		visited = append(visited, line)
		return "x", nil
	}, 4, 1)

	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, visited)
}

func TestRange_String(t *testing.T) {
	t.Parallel()

	r := fold.Range{StartLineNumber: 3, EndLineNumber: 9}
	assert.Equal(t, "3-9", r.String())
	assert.Equal(t, 6, r.Lines())
}

func TestLines_OutOfRange(t *testing.T) {
	t.Parallel()

	doc := fold.Lines{"a"}
	assert.Empty(t, doc.LineText(0))
	assert.Empty(t, doc.LineText(2))
	assert.Equal(t, "a", doc.LineText(1))
}

func FuzzComputeRanges(f *testing.F) {
	f.Add("a\n  b\n    c\n  d\ne", 4, 1)
	f.Add("\t\tx\n\ty\nz", 2, 0)
	f.Add("", 8, 3)

	f.Fuzz(func(t *testing.T, content string, tabSize, minSize int) {
		if tabSize <= 0 || tabSize > 64 || minSize < 1 || minSize > 64 {
			t.Skip()
		}
		doc := fold.Lines(strings.Split(content, "\n"))
		for _, r := range fold.ComputeRanges(doc, tabSize, minSize) {
			assertRangeInBounds(t, r, doc.LineCount(), minSize)
		}
	})
}

func BenchmarkComputeRanges(b *testing.B) {
	doc := randomDocument(rand.New(rand.NewSource(1)), 100_000)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = fold.ComputeRanges(doc, 4, 1)
	}
}

func assertRangeInBounds(t *testing.T, r fold.Range, lineCount, minSize int) {
	t.Helper()

	assert.GreaterOrEqual(t, r.StartLineNumber, 1, "range %s", r)
	assert.Less(t, r.StartLineNumber, r.EndLineNumber, "range %s", r)
	assert.LessOrEqual(t, r.EndLineNumber, lineCount, "range %s", r)
	assert.GreaterOrEqual(t, r.EndLineNumber-r.StartLineNumber, minSize, "range %s", r)
}

// randomDocument builds lines with random space/tab indentation, including blanks.
func randomDocument(rng *rand.Rand, n int) fold.Lines {
	lines := make(fold.Lines, n)
	for i := range lines {
		if rng.Intn(8) == 0 {
			lines[i] = strings.Repeat(" ", rng.Intn(4))
			continue
		}
		var sb strings.Builder
		for range rng.Intn(6) {
			if rng.Intn(3) == 0 {
				sb.WriteByte('\t')
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("x")
		lines[i] = sb.String()
	}
	return lines
}
