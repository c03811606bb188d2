package mdast

// Point is a location in a source file. Line and Column are 1-based,
// Column counts bytes. Offset is the 0-based byte index.
type Point struct {
	Line   int
	Column int
	Offset int
}

// IsValid returns true if this point has valid (positive) values.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Advance returns the point n bytes further along the same line.
func (p Point) Advance(n int) Point {
	return Point{Line: p.Line, Column: p.Column + n, Offset: p.Offset + n}
}

// Position is the span between two points. End is exclusive.
type Position struct {
	Start Point
	End   Point
}

// IsValid returns true if both start and end points are valid.
func (p Position) IsValid() bool {
	return p.Start.IsValid() && p.End.IsValid()
}

// Text returns the source text for this node.
// Returns nil if the node has no position or no associated content.
func (n *Node) Text(content []byte) []byte {
	if !n.Position.IsValid() {
		return nil
	}

	start, end := n.Position.Start.Offset, n.Position.End.Offset
	if start < 0 || end > len(content) || start > end {
		return nil
	}
	return content[start:end]
}
