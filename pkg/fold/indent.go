// Package fold computes indentation-based folding ranges for text documents.
// It knows nothing about language syntax: a line followed by one or more
// lines indented strictly deeper opens a foldable range.
package fold

import (
	"errors"
	"fmt"
)

// BlankLine is the indentation reported for empty or whitespace-only lines.
const BlankLine = -1

// DefaultMinimumRangeSize is the smallest end-start distance reported by default.
const DefaultMinimumRangeSize = 1

// Sentinel errors for parameter validation.
var (
	// ErrInvalidTabSize indicates a tab size that is not a positive integer.
	ErrInvalidTabSize = errors.New("tab size must be a positive integer")

	// ErrInvalidMinimumRangeSize indicates a negative minimum range size.
	ErrInvalidMinimumRangeSize = errors.New("minimum range size must be >= 0")
)

// IndentLevel returns the indentation width of line, or BlankLine if the line
// is empty or contains only spaces and tabs.
//
// A space adds one column. A tab adds one column and then pads by the
// remainder of the running width modulo tabSize, so tabs do not necessarily
// land on tab stops. tabSize must be positive; see ValidateTabSize.
func IndentLevel(line string, tabSize int) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			indent++
		case '\t':
			indent++
			indent += indent % tabSize
		default:
			return indent
		}
	}
	return BlankLine
}

// ValidateTabSize reports whether tabSize can be passed to IndentLevel.
func ValidateTabSize(tabSize int) error {
	if tabSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTabSize, tabSize)
	}
	return nil
}

// ValidateMinimumRangeSize reports whether size is an acceptable range filter.
func ValidateMinimumRangeSize(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMinimumRangeSize, size)
	}
	return nil
}
