package goldmark

import (
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yaklabco/gomdmath/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// Only block nodes are mapped. Inline content is flattened into the Value of
// its block, so headings and paragraphs carry their raw source text. Leaf
// positions span the leaf's source lines; container positions span their
// children.
type mapper struct {
	snapshot *mdast.FileSnapshot
	content  []byte
}

// newMapper creates a new mapper for the snapshot's content.
func newMapper(snapshot *mdast.FileSnapshot) *mapper {
	return &mapper{snapshot: snapshot, content: snapshot.Content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	doc.Position = m.snapshot.PositionOf(0, len(m.content))
	return doc
}

// mapChildren maps the block children of a goldmark node.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeInline {
			continue
		}
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
	}
}

// mapNode converts a single goldmark block node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *MathBlock:
		return m.mapMathBlock(gmn)

	case *ast.Heading:
		return m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		return m.mapLeaf(mdast.NodeParagraph, gmNode, m.inlineValue(gmNode))

	case *ast.List:
		return m.mapList(gmn)

	case *ast.ListItem:
		return m.mapContainer(mdast.NodeListItem, gmNode)

	case *ast.Blockquote:
		return m.mapContainer(mdast.NodeBlockquote, gmNode)

	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node := m.mapLeaf(mdast.NodeCodeBlock, gmNode, m.rawValue(gmNode))
		node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}
		return node

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	default:
		// GFM tables and other extension blocks keep their inline text.
		node := mdast.NewNode(mdast.NodeRaw)
		start, end := m.inlineRange(gmNode)
		if start >= 0 {
			node.Value = string(m.content[start:end])
			node.Position = m.snapshot.PositionOf(start, end)
		}
		return node
	}
}

// mapMathBlock converts a math block into the same node the native parser
// emits.
func (m *mapper) mapMathBlock(block *MathBlock) *mdast.Node {
	start, stop := block.Span()
	node := mathblock.NewNode(mathblock.Result{
		Fence:    block.Fence,
		Consumed: stop - start,
		Value:    block.Value(m.content),
		Closed:   block.Closed,
	})
	node.Position = m.snapshot.PositionOf(start, stop)
	return node
}

// mapHeading converts a goldmark Heading to an mdast node.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := m.mapLeaf(mdast.NodeHeading, h, m.inlineValue(h))
	node.Block = &mdast.BlockAttrs{HeadingLevel: h.Level}
	return node
}

// mapList converts a goldmark List to an mdast node. goldmark stores the
// bullet character for bullet lists and the delimiter for ordered ones.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := m.mapContainer(mdast.NodeList, list)

	listAttrs := &mdast.ListAttrs{
		Ordered: list.IsOrdered(),
		Tight:   list.IsTight,
	}
	if list.IsOrdered() {
		listAttrs.StartNumber = list.Start
		listAttrs.Delimiter = string(list.Marker)
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = &mdast.BlockAttrs{List: listAttrs}
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := m.mapLeaf(mdast.NodeCodeBlock, codeBlock, m.rawValue(codeBlock))

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.content))
	}

	fenceChar, fenceLength := m.detectFenceStyle(codeBlock)
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
	}}
	return node
}

// mapHTMLBlock converts a goldmark HTMLBlock, including its closure line.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	value := m.rawValue(block)
	if block.HasClosure() {
		value += string(block.ClosureLine.Value(m.content))
		value = strings.TrimSuffix(value, "\n")
	}
	return m.mapLeaf(mdast.NodeHTMLBlock, block, value)
}

// mapLeaf creates a leaf node positioned over gmNode's lines.
func (m *mapper) mapLeaf(kind mdast.NodeKind, gmNode ast.Node, value string) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Value = value

	lines := gmNode.Lines()
	if lines.Len() > 0 {
		first, last := lines.At(0), lines.At(lines.Len()-1)
		stop := last.Stop
		for stop > first.Start && (m.content[stop-1] == '\n' || m.content[stop-1] == '\r') {
			stop--
		}
		node.Position = m.snapshot.PositionOf(first.Start, stop)
	}
	return node
}

// mapContainer maps a container and derives its position from its children.
func (m *mapper) mapContainer(kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)

	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Position.IsValid() {
			node.Position.Start = child.Position.Start
			break
		}
	}
	for child := node.LastChild; child != nil; child = child.Prev {
		if child.Position.IsValid() {
			node.Position.End = child.Position.End
			break
		}
	}
	return node
}

// rawValue joins a raw block's lines and drops the final line break.
func (m *mapper) rawValue(gmNode ast.Node) string {
	var b strings.Builder
	lines := gmNode.Lines()
	for i := range lines.Len() {
		writeSegment(&b, lines.At(i), m.content)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// inlineValue returns the source text of a heading or paragraph with
// surrounding whitespace removed from each line.
func (m *mapper) inlineValue(gmNode ast.Node) string {
	lines := gmNode.Lines()
	parts := make([]string, 0, lines.Len())
	for i := range lines.Len() {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(m.content))))
	}
	return strings.Join(parts, "\n")
}

// inlineRange returns the byte range covered by the text segments below
// gmNode, or -1, -1 when there are none.
func (m *mapper) inlineRange(gmNode ast.Node) (int, int) {
	start, end := -1, -1
	_ = ast.Walk(gmNode, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			seg := t.Segment
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, end
}

// detectFenceStyle extracts the fence character and length of a fenced code
// block from the line before its first content line, or from the line that
// holds its info string.
func (m *mapper) detectFenceStyle(codeBlock *ast.FencedCodeBlock) (byte, int) {
	if codeBlock.Info != nil {
		start := m.lineStart(codeBlock.Info.Segment.Start)
		return m.extractFenceFromLine(start, codeBlock.Info.Segment.Start)
	}

	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return '`', 3
	}

	lineStart := m.lineStart(lines.At(0).Start)
	if lineStart == 0 {
		return '`', 3
	}
	prevLineEnd := lineStart - 1
	return m.extractFenceFromLine(m.lineStart(prevLineEnd), prevLineEnd)
}

// lineStart returns the offset of the start of the line holding offset.
func (m *mapper) lineStart(offset int) int {
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// extractFenceFromLine extracts the fence character and length from a line.
// Container markers before the fence are skipped.
func (m *mapper) extractFenceFromLine(start, end int) (byte, int) {
	pos := start
	for pos < end && pos < len(m.content) {
		c := m.content[pos]
		if c == '`' || c == '~' {
			break
		}
		pos++
	}
	if pos >= end || pos >= len(m.content) {
		return '`', 3
	}

	fenceChar := m.content[pos]
	fenceLength := 0
	for pos < end && pos < len(m.content) && m.content[pos] == fenceChar {
		fenceLength++
		pos++
	}

	return fenceChar, max(fenceLength, 3)
}

// writeSegment writes seg, expanding its padding to spaces.
func writeSegment(b *strings.Builder, seg text.Segment, source []byte) {
	b.WriteString(strings.Repeat(" ", seg.Padding))
	b.Write(seg.Value(source))
}
