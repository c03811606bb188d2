// Package render writes mdast trees as HTML.
//
// Nodes carrying a Data hint render as the element the hint names, with its
// properties as attributes and its HChildren as content. Other block kinds
// use their usual HTML elements. Paragraph and heading text is written as
// escaped source text; inline Markdown is not interpreted.
package render

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// HTML writes the HTML rendering of root to w.
func HTML(w io.Writer, root *mdast.Node) error {
	bw := bufio.NewWriter(w)
	r := &htmlRenderer{w: bw}
	r.node(root, false)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

type htmlRenderer struct {
	w *bufio.Writer
}

func (r *htmlRenderer) node(n *mdast.Node, tight bool) {
	if n.Data != nil && n.Data.HName != "" {
		r.hinted(n)
		return
	}

	switch n.Kind {
	case mdast.NodeDocument:
		r.children(n, false)

	case mdast.NodeHeading:
		level := 1
		if n.Block != nil && n.Block.HeadingLevel > 0 {
			level = n.Block.HeadingLevel
		}
		tag := "h" + strconv.Itoa(level)
		r.open(tag)
		r.text(n.Value)
		r.close(tag)
		r.newline()

	case mdast.NodeParagraph:
		if tight {
			r.text(n.Value)
			return
		}
		r.open("p")
		r.text(n.Value)
		r.close("p")
		r.newline()

	case mdast.NodeRaw:
		r.open("p")
		r.text(n.Value)
		r.close("p")
		r.newline()

	case mdast.NodeText:
		r.text(n.Value)

	case mdast.NodeList:
		r.list(n)

	case mdast.NodeListItem:
		r.listItem(n, tight)

	case mdast.NodeBlockquote:
		r.open("blockquote")
		r.newline()
		r.children(n, false)
		r.close("blockquote")
		r.newline()

	case mdast.NodeCodeBlock:
		r.code(n)

	case mdast.NodeThematicBreak:
		r.raw("<hr />\n")

	case mdast.NodeHTMLBlock:
		r.raw(n.Value)
		r.newline()

	case mdast.NodeMath:
		// Math nodes built without a render hint.
		r.raw(`<div class="math">`)
		r.text(n.Value)
		r.raw("</div>\n")
	}
}

func (r *htmlRenderer) children(n *mdast.Node, tight bool) {
	for child := n.FirstChild; child != nil; child = child.Next {
		r.node(child, tight)
	}
}

// hinted renders a node from its Data hint.
func (r *htmlRenderer) hinted(n *mdast.Node) {
	r.raw("<" + n.Data.HName)

	keys := make([]string, 0, len(n.Data.HProperties))
	for key := range n.Data.HProperties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.raw(" " + attributeName(key) + `="`)
		r.text(n.Data.HProperties[key])
		r.raw(`"`)
	}
	r.raw(">")

	for _, child := range n.Data.HChildren {
		r.node(child, true)
	}

	r.close(n.Data.HName)
	if n.IsBlock() {
		r.newline()
	}
}

func (r *htmlRenderer) list(n *mdast.Node) {
	tag := "ul"
	tight := true
	start := ""
	if attrs := listAttrs(n); attrs != nil {
		tight = attrs.Tight
		if attrs.Ordered {
			tag = "ol"
			if attrs.StartNumber != 1 {
				start = ` start="` + strconv.Itoa(attrs.StartNumber) + `"`
			}
		}
	}

	r.raw("<" + tag + start + ">")
	r.newline()
	for child := n.FirstChild; child != nil; child = child.Next {
		r.node(child, tight)
	}
	r.close(tag)
	r.newline()
}

func (r *htmlRenderer) listItem(n *mdast.Node, tight bool) {
	r.open("li")
	for child := n.FirstChild; child != nil; child = child.Next {
		inline := tight && child.Kind == mdast.NodeParagraph
		if !inline && child == n.FirstChild {
			r.newline()
		}
		r.node(child, tight)
		if inline && child.Next != nil {
			r.newline()
		}
	}
	r.close("li")
	r.newline()
}

func (r *htmlRenderer) code(n *mdast.Node) {
	r.raw("<pre><code")
	if n.Block != nil && n.Block.CodeBlock != nil && n.Block.CodeBlock.Info != "" {
		lang := firstWord(n.Block.CodeBlock.Info)
		r.raw(` class="language-`)
		r.text(lang)
		r.raw(`"`)
	}
	r.raw(">")
	if n.Value != "" {
		r.text(n.Value)
		r.newline()
	}
	r.raw("</code></pre>\n")
}

func (r *htmlRenderer) open(tag string)  { r.raw("<" + tag + ">") }
func (r *htmlRenderer) close(tag string) { r.raw("</" + tag + ">") }
func (r *htmlRenderer) newline()         { _ = r.w.WriteByte('\n') }
func (r *htmlRenderer) raw(s string)     { _, _ = r.w.WriteString(s) }

func (r *htmlRenderer) text(s string) {
	_, _ = r.w.Write(util.EscapeHTML([]byte(s)))
}

func listAttrs(n *mdast.Node) *mdast.ListAttrs {
	if n.Block == nil {
		return nil
	}
	return n.Block.List
}

// attributeName maps hast property names to HTML attribute names.
func attributeName(key string) string {
	if key == "className" {
		return "class"
	}
	return key
}

func firstWord(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i]
		}
	}
	return s
}
