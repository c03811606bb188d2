package mathblock

const (
	// DefaultMarker is the fence byte used when none is configured.
	DefaultMarker byte = '$'

	// DefaultMinFence is the shortest marker run that opens a block.
	DefaultMinFence = 2

	// codeIndent is the run of leading spaces at which a line is treated as
	// indented content and can no longer close a block.
	codeIndent = 4
)

// Fence describes the opening line of a math block.
type Fence struct {
	// Marker is the fence byte.
	Marker byte

	// Count is the length of the opening marker run. A closing run must be
	// at least this long.
	Count int

	// Indent is the number of spaces and tabs before the opening run.
	Indent int
}

// Closes reports whether line would close a block opened by f. The line may
// carry its trailing line break.
func (f Fence) Closes(line string) bool {
	spaces := spaceRun(line, 0)
	if spaces >= codeIndent {
		return false
	}
	return markerRun(line, spaces, f.Marker) >= f.Count
}

// Dedent removes up to f.Indent leading spaces from line. Only spaces are
// removed; a shorter run is removed entirely.
func (f Fence) Dedent(line string) string {
	spaces := spaceRun(line, 0)
	return line[min(spaces, f.Indent):]
}

// Open reports whether line opens a block with the given marker and minimum
// run length. Anything after the opening run is ignored unless it contains
// the marker byte, which rejects the line.
func Open(line string, marker byte, minFence int) (Fence, int, bool) {
	pos := 0
	for pos < len(line) && isIndentByte(line[pos]) {
		pos++
	}
	indent := pos

	count := markerRun(line, pos, marker)
	if count == 0 || count < minFence {
		return Fence{}, 0, false
	}
	pos += count

	for pos < len(line) && line[pos] != '\n' {
		if line[pos] == marker {
			return Fence{}, 0, false
		}
		pos++
	}

	return Fence{Marker: marker, Count: count, Indent: indent}, pos, true
}

func isIndentByte(c byte) bool {
	return c == ' ' || c == '\t'
}

func spaceRun(s string, from int) int {
	i := from
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i - from
}

func markerRun(s string, from int, marker byte) int {
	i := from
	for i < len(s) && s[i] == marker {
		i++
	}
	return i - from
}

func lineEnd(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return len(s)
}
