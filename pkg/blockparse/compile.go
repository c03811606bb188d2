package blockparse

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// Visitor serializes one node back to Markdown. It may call back into the
// compiler for the node's children.
type Visitor func(c *Compiler, node *mdast.Node) string

// Compiler serializes mdast trees to Markdown using one visitor per node
// kind. Kinds without a visitor serialize as their Value. A Compiler is
// immutable and safe for concurrent use.
type Compiler struct {
	visitors map[mdast.NodeKind]Visitor
}

// Compile serializes a tree. A non-empty document ends with a line break.
func (c *Compiler) Compile(node *mdast.Node) string {
	out := c.Visit(node)
	if node.Kind == mdast.NodeDocument && out != "" {
		out += "\n"
	}
	return out
}

// Visit serializes a single node.
func (c *Compiler) Visit(node *mdast.Node) string {
	if visitor, ok := c.visitors[node.Kind]; ok {
		return visitor(c, node)
	}
	return node.Value
}

// Blocks serializes the children of node joined by sep.
func (c *Compiler) Blocks(node *mdast.Node, sep string) string {
	children := node.Children()
	parts := make([]string, 0, len(children))
	for _, child := range children {
		parts = append(parts, c.Visit(child))
	}
	return strings.Join(parts, sep)
}

func builtinVisitors() map[mdast.NodeKind]Visitor {
	return map[mdast.NodeKind]Visitor{
		mdast.NodeDocument:      visitDocument,
		mdast.NodeHeading:       visitHeading,
		mdast.NodeThematicBreak: visitThematicBreak,
		mdast.NodeCodeBlock:     visitCode,
		mdast.NodeBlockquote:    visitBlockquote,
		mdast.NodeList:          visitList,
	}
}

func visitDocument(c *Compiler, node *mdast.Node) string {
	return c.Blocks(node, "\n\n")
}

func visitHeading(_ *Compiler, node *mdast.Node) string {
	level := 1
	if node.Block != nil && node.Block.HeadingLevel > 0 {
		level = node.Block.HeadingLevel
	}

	hashes := strings.Repeat("#", level)
	if node.Value == "" {
		return hashes
	}
	return hashes + " " + node.Value
}

func visitThematicBreak(_ *Compiler, _ *mdast.Node) string {
	return "***"
}

func visitCode(_ *Compiler, node *mdast.Node) string {
	var attrs *mdast.CodeBlockAttrs
	if node.Block != nil {
		attrs = node.Block.CodeBlock
	}

	if attrs != nil && attrs.Indented {
		return prefixLines(node.Value, "    ", "    ")
	}

	info := ""
	if attrs != nil {
		info = attrs.Info
	}

	char := byte('`')
	if strings.IndexByte(info, '`') >= 0 {
		char = '~'
	}
	fence := strings.Repeat(string(char), max(3, longestFenceRun(node.Value, char)+1))

	if node.Value == "" {
		return fence + info + "\n" + fence
	}
	return fence + info + "\n" + node.Value + "\n" + fence
}

func visitBlockquote(c *Compiler, node *mdast.Node) string {
	return prefixLines(c.Blocks(node, "\n\n"), "> ", "> ")
}

func visitList(c *Compiler, node *mdast.Node) string {
	attrs := &mdast.ListAttrs{BulletMarker: "-", Tight: true}
	if node.Block != nil && node.Block.List != nil {
		attrs = node.Block.List
	}

	itemSep, blockSep := "\n", "\n"
	if !attrs.Tight {
		itemSep, blockSep = "\n\n", "\n\n"
	}

	var items []string
	number := attrs.StartNumber
	for item := node.FirstChild; item != nil; item = item.Next {
		marker := attrs.BulletMarker
		if attrs.Ordered {
			marker = strconv.Itoa(number) + attrs.Delimiter
			number++
		}
		if marker == "" {
			marker = "-"
		}

		body := c.Blocks(item, blockSep)
		if body == "" {
			items = append(items, marker)
			continue
		}

		indent := strings.Repeat(" ", len(marker)+1)
		items = append(items, prefixLines(body, marker+" ", indent))
	}

	return strings.Join(items, itemSep)
}

// prefixLines puts first before the first line and rest before every other
// non-blank line. Blank lines get the prefix with trailing spaces removed.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if isBlank(line) {
			lines[i] = strings.TrimRight(prefix, " ")
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func longestFenceRun(s string, char byte) int {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		n := 0
		for n < len(trimmed) && trimmed[n] == char {
			n++
		}
		longest = max(longest, n)
	}
	return longest
}
