package goldmark

import (
	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Priorities place the math block parser right after goldmark's fenced code
// parser (700) and the renderer next to the other extension renderers.
const (
	mathBlockParserPriority   = 701
	mathBlockRendererPriority = 501
)

// Extension adds fenced math blocks to a goldmark.Markdown.
type Extension struct {
	opts []mathblock.Option
}

var _ goldmark.Extender = (*Extension)(nil)

// Math is the extension with the default '$$' fence.
var Math = &Extension{}

// NewExtension returns an extension whose fences follow opts.
func NewExtension(opts ...mathblock.Option) *Extension {
	return &Extension{opts: opts}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewMathBlockParser(e.opts...), mathBlockParserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMathBlockRenderer(), mathBlockRendererPriority),
	))
}
