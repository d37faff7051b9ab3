package fold

// Lines adapts a slice of line texts to Document. Index 0 is line 1.
type Lines []string

// LineCount implements Document.
func (l Lines) LineCount() int {
	return len(l)
}

// LineText implements Document. Out-of-range line numbers yield "".
func (l Lines) LineText(line int) string {
	if line < 1 || line > len(l) {
		return ""
	}
	return l[line-1]
}
