package goldmark

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yuin/goldmark/ast"
)

// KindMathBlock is the goldmark node kind of a fenced math block.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathBlock is a fenced math block in a goldmark tree. Its Lines hold the
// de-indented content lines between the fences.
type MathBlock struct {
	ast.BaseBlock

	// Fence is the opening fence.
	Fence mathblock.Fence

	// Closed reports whether a closing fence was found.
	Closed bool

	start int
	stop  int
}

// NewMathBlock returns a math block opened by fence at byte offset start.
func NewMathBlock(fence mathblock.Fence, start int) *MathBlock {
	return &MathBlock{Fence: fence, start: start, stop: start}
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

// IsRaw implements ast.Node. Math content is never parsed as inlines.
func (n *MathBlock) IsRaw() bool {
	return true
}

// Span returns the byte range of the block in the source, from the start of
// the opening line to the end of the closing line or, for an unclosed block,
// the end of the last content line. Line breaks at the end are excluded.
func (n *MathBlock) Span() (int, int) {
	return n.start, n.stop
}

// Value returns the math content with surrounding blank lines removed.
func (n *MathBlock) Value(source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		writeSegment(&b, lines.At(i), source)
	}
	content := strings.TrimSuffix(b.String(), "\n")
	return mathblock.TrimBlankLines(content)
}

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Marker":      string(n.Fence.Marker),
		"FenceLength": strconv.Itoa(n.Fence.Count),
		"Indent":      strconv.Itoa(n.Fence.Indent),
		"Closed":      strconv.FormatBool(n.Closed),
	}, nil)
}
