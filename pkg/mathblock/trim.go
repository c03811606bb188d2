package mathblock

import "strings"

// TrimBlankLines removes leading and trailing lines that contain only spaces
// and tabs. Blank lines between non-blank lines are kept.
func TrimBlankLines(s string) string {
	for {
		end := strings.IndexByte(s, '\n')
		if end < 0 || !isBlank(s[:end]) {
			break
		}
		s = s[end+1:]
	}

	for {
		start := strings.LastIndexByte(s, '\n')
		if start < 0 {
			if isBlank(s) {
				return ""
			}
			return s
		}
		if !isBlank(s[start+1:]) {
			return s
		}
		s = s[:start]
	}
}

func isBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if !isIndentByte(line[i]) {
			return false
		}
	}
	return true
}
