package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdmath/pkg/blockparse"
	"github.com/yaklabco/gomdmath/pkg/config"
	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yaklabco/gomdmath/pkg/mdast"
	gmparser "github.com/yaklabco/gomdmath/pkg/parser/goldmark"
	"github.com/yaklabco/gomdmath/pkg/render"
)

// engine parses and renders Markdown with the parser chosen by the
// configuration. Both parsers recognize math blocks with the same scanner
// options and produce the same math nodes.
type engine struct {
	name     config.Engine
	native   *blockparse.Parser
	goldmark *gmparser.Parser
}

func newEngine(cfg *config.Config) (*engine, error) {
	opts := cfg.ScannerOptions()

	if cfg.Engine == config.EngineGoldmark {
		return &engine{
			name:     cfg.Engine,
			goldmark: gmparser.New(string(cfg.Flavor), opts...),
		}, nil
	}

	native, err := blockparse.New(mathblock.NewPlugin(opts...))
	if err != nil {
		return nil, fmt.Errorf("build parser: %w", err)
	}
	return &engine{name: config.EngineNative, native: native}, nil
}

// parse returns the tree of content.
func (e *engine) parse(ctx context.Context, path string, content []byte) (*mdast.Node, error) {
	if e.goldmark != nil {
		snapshot, err := e.goldmark.Parse(ctx, path, content)
		if err != nil {
			return nil, err
		}
		return snapshot.Root, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return e.native.Parse(string(content)), nil
}

// renderHTML writes the HTML rendering of content to w.
func (e *engine) renderHTML(ctx context.Context, w io.Writer, content []byte) error {
	if e.goldmark != nil {
		return e.goldmark.RenderHTML(w, content)
	}

	root, err := e.parse(ctx, "", content)
	if err != nil {
		return err
	}
	if err := render.HTML(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// mathBlocks returns the math blocks of content in document order.
func (e *engine) mathBlocks(ctx context.Context, path string, content []byte) ([]*mdast.Node, error) {
	root, err := e.parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return mdast.FindByKind(root, mdast.NodeMath), nil
}
