package pretty

import (
	"fmt"
	"strings"
)

// FormatChange formats a file that was, or would be, rewritten.
func (s *Styles) FormatChange(path string, written bool) string {
	verb := "would rewrite"
	if written {
		verb = "rewrote"
	}
	return s.Changed.Render(verb) + " " + s.FilePath.Render(path)
}

// FormatSkip formats a block that was left alone, with the reason.
func (s *Styles) FormatSkip(path string, line int, reason string) string {
	return s.Skipped.Render("skipped") + " " +
		s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d", line)) +
		s.Dim.Render(" ("+reason+")")
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.Error.Render("error") + " " + s.FilePath.Render(path) + ": " + err.Error()
}

// FormatDiff colors a unified diff line by line. File headers are bold,
// hunk headers and changed lines take the diff styles.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		text, newline := strings.CutSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "diff "),
			strings.HasPrefix(text, "+++ "),
			strings.HasPrefix(text, "--- "):
			b.WriteString(s.Bold.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(s.DiffHunk.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(s.DiffAdded.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(s.DiffRemoved.Render(text))
		default:
			b.WriteString(text)
		}
		if newline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
