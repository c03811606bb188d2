package mathblock

import (
	"fmt"

	"github.com/yaklabco/gomdmath/pkg/blockparse"
	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// BlockName is the tokenizer name math blocks register under.
const BlockName = "math"

// Plugin registers math blocks with a blockparse.Registry: the tokenizer goes
// immediately after fenced code, it interrupts paragraphs, lists and
// blockquotes from the same relative position, and math nodes serialize
// through Stringify.
type Plugin struct {
	scanner *Scanner
}

var _ blockparse.Plugin = (*Plugin)(nil)

// NewPlugin returns a plugin scanning with the given options.
func NewPlugin(opts ...Option) *Plugin {
	return &Plugin{scanner: NewScanner(opts...)}
}

// Name implements blockparse.Plugin.
func (p *Plugin) Name() string { return BlockName }

// Scanner returns the plugin's scanner.
func (p *Plugin) Scanner() *Scanner { return p.scanner }

// Register implements blockparse.Plugin.
func (p *Plugin) Register(r *blockparse.Registry) error {
	handle, err := r.AddBlock(BlockName, p.tokenize, blockparse.After(blockparse.FencedCode))
	if err != nil {
		return err
	}

	err = handle.Interrupt(blockparse.After(blockparse.FencedCode),
		blockparse.InterruptParagraph,
		blockparse.InterruptList,
		blockparse.InterruptBlockquote,
	)
	if err != nil {
		if rmErr := handle.Remove(); rmErr != nil {
			return fmt.Errorf("%w (cleanup: %w)", err, rmErr)
		}
		return err
	}

	handle.Visit(mdast.NodeMath, func(_ *blockparse.Compiler, node *mdast.Node) string {
		return StringifyNode(node)
	})

	return nil
}

func (p *Plugin) tokenize(_ *blockparse.Context, text string, probe bool) (*mdast.Node, int, bool) {
	res, ok := p.scanner.Scan(text, probe)
	if !ok {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}
	return NewNode(res), res.Consumed, true
}
