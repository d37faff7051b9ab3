package fold

import "fmt"

// Range is a foldable span of lines. Both line numbers are 1-based and
// inclusive; StartLineNumber is the line that stays visible when folded.
type Range struct {
	StartLineNumber int `json:"startLineNumber"`
	EndLineNumber   int `json:"endLineNumber"`
}

// Lines returns the number of lines hidden when the range is folded.
func (r Range) Lines() int {
	return r.EndLineNumber - r.StartLineNumber
}

// String formats the range as "start-end".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.StartLineNumber, r.EndLineNumber)
}

// Document is a read-only, line-addressed text buffer.
// Line numbers run from 1 to LineCount and LineText excludes the terminator.
type Document interface {
	LineCount() int
	LineText(line int) string
}

// LineFunc returns the raw text of a 1-based line number.
type LineFunc func(line int) (string, error)

// region is an open indentation level on the scan stack.
// line is the lowest line number seen so far at this indent.
type region struct {
	indent int
	line   int
}

// ComputeRanges returns the indentation folding ranges of doc.
// Ranges whose EndLineNumber-StartLineNumber is below minimumRangeSize are
// dropped. Results come out in descending StartLineNumber order.
func ComputeRanges(doc Document, tabSize, minimumRangeSize int) []Range {
	ranges, _ := ComputeRangesFunc(doc.LineCount(), func(line int) (string, error) {
		return doc.LineText(line), nil
	}, tabSize, minimumRangeSize)
	return ranges
}

// ComputeRangesFunc is ComputeRanges over a line accessor that may fail.
// The first accessor error aborts the scan; it is returned wrapped with the
// line number and no ranges are returned.
func ComputeRangesFunc(lineCount int, lineAt LineFunc, tabSize, minimumRangeSize int) ([]Range, error) {
	var result []Range

	// The sentinel can never be popped since real indents are >= 0.
	stack := []region{{indent: -1, line: lineCount + 1}}

	for line := lineCount; line > 0; line-- {
		text, err := lineAt(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		indent := IndentLevel(text, tabSize)
		if indent == BlankLine {
			continue
		}

		top := len(stack) - 1
		if stack[top].indent > indent {
			// Close every deeper region; only the shallowest boundary is reported.
			for stack[top].indent > indent {
				stack = stack[:top]
				top--
			}

			endLineNumber := stack[top].line - 1
			if endLineNumber-line >= minimumRangeSize {
				result = append(result, Range{StartLineNumber: line, EndLineNumber: endLineNumber})
			}
		}

		if stack[top].indent == indent {
			stack[top].line = line
		} else {
			stack = append(stack, region{indent: indent, line: line})
		}
	}

	return result, nil
}
