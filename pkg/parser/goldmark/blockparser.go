package goldmark

import (
	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mathBlockParser opens math blocks with the same fence rules as
// mathblock.Scanner and feeds goldmark one content line at a time.
type mathBlockParser struct {
	marker   byte
	minFence int
}

var _ parser.BlockParser = (*mathBlockParser)(nil)

// NewMathBlockParser returns a goldmark block parser for math blocks.
//
//nolint:ireturn // goldmark registers block parsers by interface
func NewMathBlockParser(opts ...mathblock.Option) parser.BlockParser {
	scanner := mathblock.NewScanner(opts...)
	return &mathBlockParser{marker: scanner.Marker(), minFence: scanner.MinFence()}
}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{b.marker}
}

func (b *mathBlockParser) Open(_ ast.Node, reader text.Reader, _ parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	fence, opening, ok := mathblock.Open(string(line), b.marker, b.minFence)
	if !ok {
		return nil, parser.NoChildren
	}

	node := NewMathBlock(fence, segment.Start)
	node.stop = segment.Start - segment.Padding + opening
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	block, ok := node.(*MathBlock)
	if !ok || block.Closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	end := segment.Start - segment.Padding + trimNewline(line)
	if block.Fence.Closes(string(line)) {
		reader.AdvanceToEOL()
		block.Closed = true
		block.stop = end
		return parser.Close
	}

	block.Lines().Append(dedentSegment(line, segment, block.Fence.Indent))
	if end > segment.Start {
		block.stop = end
	}
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(_ ast.Node, _ text.Reader, _ parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

// dedentSegment removes up to indent leading spaces from a content line. The
// reader reports columns left over from a partially consumed tab as padding,
// which counts as leading spaces.
func dedentSegment(line []byte, segment text.Segment, indent int) text.Segment {
	spaces := 0
	for spaces < len(line) && spaces < indent && line[spaces] == ' ' {
		spaces++
	}

	if spaces <= segment.Padding {
		return text.NewSegmentPadding(segment.Start, segment.Stop, segment.Padding-spaces)
	}
	return text.NewSegment(segment.Start+spaces-segment.Padding, segment.Stop)
}

// trimNewline returns the length of line without its trailing line break.
func trimNewline(line []byte) int {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	return n
}
