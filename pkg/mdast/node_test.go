package mdast_test

import (
	"testing"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

func TestNode_IsBlock(t *testing.T) {
	t.Parallel()

	blockKinds := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeParagraph,
		mdast.NodeHeading,
		mdast.NodeList,
		mdast.NodeListItem,
		mdast.NodeBlockquote,
		mdast.NodeCodeBlock,
		mdast.NodeThematicBreak,
		mdast.NodeHTMLBlock,
		mdast.NodeMath,
	}

	for _, kind := range blockKinds {
		node := &mdast.Node{Kind: kind}
		if !node.IsBlock() {
			t.Errorf("expected %s to be block", kind)
		}
	}

	text := &mdast.Node{Kind: mdast.NodeText}
	if text.IsBlock() {
		t.Error("expected Text not to be a block")
	}
}

func TestNode_Math(t *testing.T) {
	t.Parallel()

	attrs := &mdast.MathAttrs{Marker: '$', FenceLength: 2, Closed: true}
	node := &mdast.Node{Kind: mdast.NodeMath, Block: &mdast.BlockAttrs{Math: attrs}}

	if node.Math() != attrs {
		t.Error("expected math attrs")
	}

	para := &mdast.Node{Kind: mdast.NodeParagraph, Block: &mdast.BlockAttrs{Math: attrs}}
	if para.Math() != nil {
		t.Error("expected nil math attrs for paragraph")
	}
}

func TestNode_Depth(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()
	quote := mdast.NewNode(mdast.NodeBlockquote)
	math := mdast.NewNode(mdast.NodeMath)
	mdast.AppendChild(doc, quote)
	mdast.AppendChild(quote, math)

	if doc.Depth() != 0 || quote.Depth() != 1 || math.Depth() != 2 {
		t.Errorf("unexpected depths %d %d %d", doc.Depth(), quote.Depth(), math.Depth())
	}
}

func TestNode_HasChildren(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument)
	child := mdast.NewNode(mdast.NodeParagraph)

	if parent.HasChildren() {
		t.Error("expected empty node to have no children")
	}

	mdast.AppendChild(parent, child)

	if !parent.HasChildren() {
		t.Error("expected node with child to have children")
	}
}

func TestNode_ChildCount(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument)

	if parent.ChildCount() != 0 {
		t.Errorf("expected 0 children, got %d", parent.ChildCount())
	}

	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	if parent.ChildCount() != 1 {
		t.Errorf("expected 1 child, got %d", parent.ChildCount())
	}

	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	if parent.ChildCount() != 3 {
		t.Errorf("expected 3 children, got %d", parent.ChildCount())
	}
}

func TestNode_Children(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument)
	child1 := mdast.NewNode(mdast.NodeParagraph)
	child2 := mdast.NewNode(mdast.NodeHeading)
	child3 := mdast.NewNode(mdast.NodeCodeBlock)

	mdast.AppendChild(parent, child1)
	mdast.AppendChild(parent, child2)
	mdast.AppendChild(parent, child3)

	children := parent.Children()

	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}

	if children[0] != child1 || children[1] != child2 || children[2] != child3 {
		t.Error("children not in expected order")
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     mdast.NodeKind
		expected string
	}{
		{mdast.NodeDocument, "Document"},
		{mdast.NodeParagraph, "Paragraph"},
		{mdast.NodeHeading, "Heading"},
		{mdast.NodeList, "List"},
		{mdast.NodeText, "Text"},
		{mdast.NodeMath, "Math"},
		{mdast.NodeKind(999), "NodeKind(999)"},
		{mdast.NodeRaw, "Raw"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if tt.kind.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.kind.String())
			}
		})
	}
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	content := []byte("para\n\n$$\nx\n$$\n")
	snapshot := mdast.NewFileSnapshot("test.md", content)

	node := mdast.NewNode(mdast.NodeMath)
	node.Position = snapshot.PositionOf(6, 13)

	if got := string(node.Text(content)); got != "$$\nx\n$$" {
		t.Errorf("Text() = %q", got)
	}

	synthetic := mdast.NewNode(mdast.NodeMath)
	if synthetic.Text(content) != nil {
		t.Error("expected nil text for synthetic node")
	}
}
