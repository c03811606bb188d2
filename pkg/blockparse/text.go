package blockparse

import "strings"

const (
	codeIndent = 4
	tabStop    = 4
)

func lineEnd(s string, from int) int {
	if i := strings.IndexByte(s[from:], '\n'); i >= 0 {
		return from + i
	}
	return len(s)
}

// nextLine returns the start of the line after the one ending at end, or -1
// at end of text.
func nextLine(s string, end int) int {
	if end >= len(s) {
		return -1
	}
	return end + 1
}

func firstLine(s string) string {
	return s[:lineEnd(s, 0)]
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

// indentWidth returns the column width of the leading whitespace of line.
func indentWidth(line string) int {
	col := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return col
		}
	}
	return col
}

// stripColumns removes up to n columns of leading whitespace and returns the
// remainder with the number of bytes removed. A tab that straddles the limit
// is replaced by the spaces it still owes.
func stripColumns(line string, n int) (string, int) {
	col := 0
	i := 0
	for i < len(line) && col < n {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			width := tabStop - col%tabStop
			if col+width > n {
				return strings.Repeat(" ", col+width-n) + line[i+1:], i + 1
			}
			col += width
		default:
			return line[i:], i
		}
		i++
	}
	return line[i:], i
}
