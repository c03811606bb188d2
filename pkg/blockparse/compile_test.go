package blockparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdmath/pkg/blockparse"
	"github.com/yaklabco/gomdmath/pkg/mdast"
)

func TestCompiler_RoundTripsCanonicalMarkdown(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\n\nSome text\nmore\n\n> quote\n\n- a\n- b\n\n1. one\n2. two\n\n```go\ncode\n```\n\n    indented\n\n***\n",
		"- a\n\n- b\n",
		"> outer\n>\n> > inner\n",
		"- item\n\n  continued\n",
		"",
	}

	registry := blockparse.NewRegistry()
	parser, compiler := registry.Parser(), registry.Compiler()

	for _, input := range inputs {
		assert.Equal(t, input, compiler.Compile(parser.Parse(input)), "input %q", input)
	}
}

func TestCompiler_Normalizes(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()
	parser, compiler := registry.Parser(), registry.Compiler()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"closed heading", "##  Sub ##\n", "## Sub\n"},
		{"thematic break", "- - -\n", "***\n"},
		{"tilde fence", "~~~\nx\n~~~\n", "```\nx\n```\n"},
		{"fence longer than content", "````\n```\n````\n", "````\n```\n````\n"},
		{"plus bullets", "+ a\n+ b\n", "+ a\n+ b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, compiler.Compile(parser.Parse(tt.input)))
		})
	}
}

func TestCompiler_CustomVisitor(t *testing.T) {
	t.Parallel()

	registry := blockparse.NewRegistry()
	registry.AddVisitor(mdast.NodeParagraph, func(_ *blockparse.Compiler, node *mdast.Node) string {
		return "<" + node.Value + ">"
	})

	doc := registry.Parser().Parse("a\n\nb")
	assert.Equal(t, "<a>\n\n<b>\n", registry.Compiler().Compile(doc))
}
