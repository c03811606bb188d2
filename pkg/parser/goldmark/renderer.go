package goldmark

import (
	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// mathBlockRenderer writes math blocks as <div class="math"> elements
// holding the escaped value.
type mathBlockRenderer struct{}

// NewMathBlockRenderer returns the HTML renderer for math blocks.
//
//nolint:ireturn // goldmark registers node renderers by interface
func NewMathBlockRenderer() renderer.NodeRenderer {
	return &mathBlockRenderer{}
}

func (r *mathBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathBlock, r.renderMathBlock)
}

func (r *mathBlockRenderer) renderMathBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block, ok := node.(*MathBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<` + mathblock.HName + ` class="` + mathblock.ClassName + `">`)
	_, _ = w.Write(util.EscapeHTML([]byte(block.Value(source))))
	_, _ = w.WriteString(`</` + mathblock.HName + ">\n")
	return ast.WalkSkipChildren, nil
}
