package blockparse_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmath/pkg/blockparse"
	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// bangTokenizer turns a line of "!!" into a raw node.
func bangTokenizer(_ *blockparse.Context, text string, probe bool) (*mdast.Node, int, bool) {
	if len(text) < 2 || text[:2] != "!!" {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}
	node := mdast.NewNode(mdast.NodeRaw)
	node.Value = "bang"
	return node, 2, true
}

func TestRegistry_Defaults(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()

	assert.Equal(t, []string{
		blockparse.BlankLine,
		blockparse.IndentedCode,
		blockparse.FencedCode,
		blockparse.Blockquote,
		blockparse.ATXHeading,
		blockparse.ThematicBreak,
		blockparse.List,
		blockparse.Paragraph,
	}, registry.Methods())

	assert.Equal(t, []string{
		blockparse.ThematicBreak,
		blockparse.List,
		blockparse.ATXHeading,
		blockparse.FencedCode,
		blockparse.Blockquote,
	}, registry.Interrupts(blockparse.InterruptParagraph))
}

func TestRegistry_AddBlockHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hint  blockparse.Hint
		index int
	}{
		{"first", blockparse.First, 0},
		{"last", blockparse.Last, 8},
		{"before", blockparse.Before(blockparse.FencedCode), 2},
		{"after", blockparse.After(blockparse.FencedCode), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := blockparse.NewRegistry()
			handle, err := registry.AddBlock("bang", bangTokenizer, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, "bang", handle.Name())

			assert.Equal(t, "bang", registry.Methods()[tt.index])
		})
	}
}

func TestRegistry_Errors(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()

	_, err := registry.AddBlock(blockparse.Paragraph, bangTokenizer, blockparse.Last)
	require.ErrorIs(t, err, blockparse.ErrDuplicateHandler)

	_, err = registry.AddBlock("bang", bangTokenizer, blockparse.After("missing"))
	require.ErrorIs(t, err, blockparse.ErrUnknownHandler)

	_, err = registry.AddBlock("bang", nil, blockparse.Last)
	require.Error(t, err)

	err = registry.AddInterrupt(blockparse.InterruptList, "missing", blockparse.Last)
	require.ErrorIs(t, err, blockparse.ErrUnknownHandler)

	err = registry.AddInterrupt(blockparse.InterruptList, blockparse.FencedCode, blockparse.Last)
	require.ErrorIs(t, err, blockparse.ErrDuplicateHandler)

	err = registry.Remove("missing")
	require.ErrorIs(t, err, blockparse.ErrUnknownHandler)
}

func TestHandle_InterruptAndRemove(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()
	handle, err := registry.AddBlock("bang", bangTokenizer, blockparse.First)
	require.NoError(t, err)

	require.NoError(t, handle.Interrupt(blockparse.First, blockparse.Containers()...))
	for _, container := range blockparse.Containers() {
		assert.Equal(t, "bang", registry.Interrupts(container)[0])
	}

	doc := registry.Parser().Parse("text\n!!")
	require.Equal(t, 2, doc.ChildCount())
	assert.Equal(t, "bang", doc.LastChild.Value)

	require.NoError(t, handle.Remove())
	assert.NotContains(t, registry.Methods(), "bang")
	for _, container := range blockparse.Containers() {
		assert.NotContains(t, registry.Interrupts(container), "bang")
	}
}

func TestRegistry_ParserIsSnapshot(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()
	before := registry.Parser()

	_, err := registry.AddBlock("bang", bangTokenizer, blockparse.First)
	require.NoError(t, err)
	after := registry.Parser()

	assert.Equal(t, mdast.NodeParagraph, before.Parse("!!").FirstChild.Kind)
	assert.Equal(t, mdast.NodeRaw, after.Parse("!!").FirstChild.Kind)
}

type failingPlugin struct{}

func (failingPlugin) Name() string { return "failing" }

func (failingPlugin) Register(*blockparse.Registry) error {
	return errors.New("boom")
}

func TestRegistry_UseWrapsPluginErrors(t *testing.T) {
	t.Parallel()

	_, err := blockparse.New(failingPlugin{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register failing")
}

func TestContainer_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "paragraph", blockparse.InterruptParagraph.String())
	assert.Equal(t, "list", blockparse.InterruptList.String())
	assert.Equal(t, "blockquote", blockparse.InterruptBlockquote.String())
	assert.Equal(t, "Container(7)", blockparse.Container(7).String())
}
