package mdast

import "sort"

// BuildLines constructs line metadata from file content.
// Lines are split on LF; a CR before the LF is reported as part of the
// newline sequence.
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
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line may be empty when content ends with a newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// PointAt converts a byte offset to a Point.
// PointAt converts a byte offset to a Point. Offsets past the end are
// clamped to the end of the content; negative offsets give the zero Point.
func (f *FileSnapshot) PointAt(offset int) Point {
	if offset < 0 || len(f.Lines) == 0 {
		return Point{}
	}
	offset = min(offset, len(f.Content))

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	idx = min(idx, len(f.Lines)-1)

	return Point{
		Line:   idx + 1,
		Column: offset - f.Lines[idx].StartOffset + 1,
		Offset: offset,
	}
}

// PositionOf returns the Position spanning [start, end).
func (f *FileSnapshot) PositionOf(start, end int) Position {
	return Position{Start: f.PointAt(start), End: f.PointAt(end)}
}
