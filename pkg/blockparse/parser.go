package blockparse

import (
	"sort"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// maxNesting bounds container recursion. Deeper container markers are read
// as paragraph text.
const maxNesting = 64

// Parser tokenizes Markdown text into an mdast tree. A Parser is immutable
// and safe for concurrent use.
type Parser struct {
	methods    []method
	tokenizers map[string]Tokenizer
	interrupts map[Container][]Tokenizer
}

// New returns a parser with the built-in block types and the given plugins.
func New(plugins ...Plugin) (*Parser, error) {
	r := NewRegistry()
	if err := r.Use(plugins...); err != nil {
		return nil, err
	}
	return r.Parser(), nil
}

// Parse tokenizes text and returns the document node. Parsing never fails;
// text no tokenizer accepts becomes raw nodes.
func (p *Parser) Parse(text string) *mdast.Node {
	lines := strings.Split(text, "\n")
	origins := make([]mdast.Point, len(lines))
	offset := 0
	for i, line := range lines {
		origins[i] = mdast.Point{Line: i + 1, Column: 1, Offset: offset}
		offset += len(line) + 1
	}

	ctx := newContext(p, lines, origins, 0)

	doc := mdast.NewDocument()
	mdast.AppendChildren(doc, ctx.tokenize())
	doc.Position = mdast.Position{Start: ctx.point(0), End: ctx.point(len(ctx.text))}

	return doc
}

// Context is the state of one tokenization level: the whole document or the
// content of one container. Tokenizers use it to map offsets to source
// positions, to check interrupt lists and to tokenize nested content.
type Context struct {
	parser *Parser
	depth  int

	text       string
	lineStarts []int
	origins    []mdast.Point

	// cursor is the start of the text handed to the running tokenizer.
	cursor int
}

func newContext(p *Parser, lines []string, origins []mdast.Point, depth int) *Context {
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}

	return &Context{
		parser:     p,
		depth:      depth,
		text:       strings.Join(lines, "\n"),
		lineStarts: starts,
		origins:    origins,
	}
}

// Depth returns the container nesting level, zero for the document.
func (c *Context) Depth() int { return c.depth }

// Point returns the source position of byte i of the text handed to the
// running tokenizer.
func (c *Context) Point(i int) mdast.Point {
	return c.point(c.cursor + i)
}

func (c *Context) point(abs int) mdast.Point {
	line := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > abs
	}) - 1
	if line < 0 {
		line = 0
	}
	return c.origins[line].Advance(abs - c.lineStarts[line])
}

// Interrupts reports whether text starts a block that ends open content of
// the given container. Tokenizers are probed; nothing is consumed.
func (c *Context) Interrupts(container Container, text string) bool {
	for _, tokenizer := range c.parser.interrupts[container] {
		if _, _, ok := tokenizer(c, text, true); ok {
			return true
		}
	}
	return false
}

// Nest tokenizes container content. lines holds the content with container
// markers removed and offsets[i] is where lines[i] starts, relative to the
// text handed to the running tokenizer.
func (c *Context) Nest(lines []string, offsets []int) []*mdast.Node {
	origins := make([]mdast.Point, len(lines))
	for i := range lines {
		origins[i] = c.Point(offsets[i])
	}

	child := newContext(c.parser, lines, origins, c.depth+1)
	return child.tokenize()
}

func (c *Context) canNest() bool {
	return c.depth < maxNesting
}

func (c *Context) tokenize() []*mdast.Node {
	var nodes []*mdast.Node

	for c.cursor < len(c.text) {
		rest := c.text[c.cursor:]

		node, consumed, ok := c.dispatch(rest)
		if !ok {
			consumed = lineEnd(rest, 0)
			if consumed == 0 {
				consumed = 1
			}
			node = mdast.NewNode(mdast.NodeRaw)
			node.Value = rest[:consumed]
		}

		nodes = c.eat(nodes, node, consumed)
	}

	return nodes
}

func (c *Context) dispatch(rest string) (*mdast.Node, int, bool) {
	for _, m := range c.parser.methods {
		node, consumed, ok := m.tokenizer(c, rest, false)
		if ok && consumed > 0 {
			return node, min(consumed, len(rest)), true
		}
	}
	return nil, 0, false
}

// eat commits consumed bytes at the cursor and records node's position.
func (c *Context) eat(nodes []*mdast.Node, node *mdast.Node, consumed int) []*mdast.Node {
	start := c.cursor
	c.cursor += consumed

	if node == nil {
		return nodes
	}

	node.Position = mdast.Position{Start: c.point(start), End: c.point(c.cursor)}
	return append(nodes, node)
}
