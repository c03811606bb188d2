package edit

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified diff between two versions of a file.
type Diff struct {
	// Path is the file path used in the diff header.
	Path string

	// Text is the unified diff, starting with the "---" and "+++" lines.
	Text string

	// Additions and Deletions count the added and removed lines.
	Additions int
	Deletions int
}

// Unified returns the diff from original to modified, or nil when they are
// equal.
func Unified(path string, original, modified []byte) (*Diff, error) {
	if string(original) == string(modified) {
		return nil, nil
	}

	name := strings.TrimPrefix(path, "/")
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(modified),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	diff := &Diff{Path: path, Text: text}
	for line := range strings.SplitSeq(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff, nil
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	name := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", name, name)
}

// String returns the diff with its git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.GitHeader() + "\n" + d.Text
}

// splitLines splits content after each line break. A final line without a
// break gets one so that diff lines stay separate.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}
