// Package goldmark parses Markdown with github.com/yuin/goldmark extended by
// fenced math blocks, and maps the result into an mdast tree.
package goldmark

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yaklabco/gomdmath/pkg/mdast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser parses Markdown with goldmark and the math extension.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
// The options configure the math fence.
func New(flavor string, opts ...mathblock.Option) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f, opts),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a FileSnapshot whose Root holds the
// mapped block tree.
//
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))
	gmDoc := p.parse(snapshot.Content)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Root = newMapper(snapshot).mapDocument(gmDoc)
	return snapshot, nil
}

// ParseAST returns goldmark's own tree for content. Math blocks appear as
// *MathBlock nodes.
//
//nolint:ireturn // goldmark trees are built from interface nodes
func (p *Parser) ParseAST(content []byte) ast.Node {
	return p.parse(content)
}

// RenderHTML writes the HTML rendering of content to w.
func (p *Parser) RenderHTML(w io.Writer, content []byte) error {
	if err := p.md.Convert(content, w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

//nolint:ireturn // goldmark trees are built from interface nodes
func (p *Parser) parse(content []byte) ast.Node {
	reader := text.NewReader(content)
	return p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))
}

// FileSnapshot is a type alias for mdast.FileSnapshot for convenience.
type FileSnapshot = mdast.FileSnapshot

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, opts []mathblock.Option) goldmark.Markdown {
	extensions := []goldmark.Extender{NewExtension(opts...)}

	switch flavor {
	case FlavorGFM:
		extensions = append(extensions, extension.GFM)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(goldmark.WithExtensions(extensions...))
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
