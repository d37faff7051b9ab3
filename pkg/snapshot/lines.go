package snapshot

import (
	"errors"
	"fmt"
)

// ErrLineOutOfRange is returned by Line for numbers outside 1..LineCount.
var ErrLineOutOfRange = errors.New("line out of range")

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line (may be empty after a trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]
	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// LineText is LineContent as a string. It implements fold.Document.
func (f *FileSnapshot) LineText(line int) string {
	return string(f.LineContent(line))
}

// Line returns the text of a 1-based line number, or ErrLineOutOfRange.
func (f *FileSnapshot) Line(line int) (string, error) {
	if line < 1 || line > len(f.Lines) {
		return "", fmt.Errorf("%w: %d (have %d)", ErrLineOutOfRange, line, len(f.Lines))
	}
	return f.LineText(line), nil
}
