package blockparse

import (
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// tokenizeParagraph accepts any non-blank line and continues until a blank
// line or a line that starts an interrupting block. Lines indented as code
// are always continuation text.
func tokenizeParagraph(ctx *Context, text string, probe bool) (*mdast.Node, int, bool) {
	first := firstLine(text)
	if isBlank(first) {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}

	lines := []string{strings.TrimLeft(first, " \t")}
	consumed := len(first)

	for pos := nextLine(text, consumed); pos >= 0; {
		end := lineEnd(text, pos)
		line := text[pos:end]

		if isBlank(line) {
			break
		}
		if indentWidth(line) < codeIndent && ctx.Interrupts(InterruptParagraph, text[pos:]) {
			break
		}

		lines = append(lines, strings.TrimLeft(line, " \t"))
		consumed = end
		pos = nextLine(text, end)
	}

	node := mdast.NewNode(mdast.NodeParagraph)
	node.Value = strings.TrimRight(strings.Join(lines, "\n"), " \t")
	return node, consumed, true
}
