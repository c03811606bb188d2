package blockparse

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

var (
	thematicBreakRegexp = regexp.MustCompile(
		`^ {0,3}((?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,})$`)

	atxHeadingRegexp       = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]|$)`)
	atxHeadingCloserRegexp = regexp.MustCompile(`(?:^|[ \t])#+[ \t]*$`)

	// Capture groups:
	// 1. indentation
	// 2. backtick fence, 3. its info string
	// 4. tilde fence, 5. its info string
	codeFenceRegexp       = regexp.MustCompile("^( {0,3})(?:(`{3,})([^`]*)|(~{3,})(.*))$")
	codeFenceCloserRegexp = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*$")
)

func tokenizeBlankLine(_ *Context, text string, _ bool) (*mdast.Node, int, bool) {
	consumed := 0
	for pos := 0; pos >= 0; {
		end := lineEnd(text, pos)
		if !isBlank(text[pos:end]) {
			break
		}
		if end == len(text) {
			consumed = end
			break
		}
		consumed = end + 1
		pos = nextLine(text, end)
	}

	return nil, consumed, consumed > 0
}

func tokenizeThematicBreak(_ *Context, text string, probe bool) (*mdast.Node, int, bool) {
	line := firstLine(text)
	if !thematicBreakRegexp.MatchString(line) {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}
	return mdast.NewNode(mdast.NodeThematicBreak), len(line), true
}

func tokenizeATXHeading(_ *Context, text string, probe bool) (*mdast.Node, int, bool) {
	line := firstLine(text)
	m := atxHeadingRegexp.FindStringSubmatchIndex(line)
	if m == nil {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}

	level := m[3] - m[2]
	content := strings.TrimRight(line[m[3]:], " \t")
	if closer := atxHeadingCloserRegexp.FindString(content); closer != "" {
		content = content[:len(content)-len(closer)]
	}

	node := mdast.NewNode(mdast.NodeHeading)
	node.Value = strings.Trim(content, " \t")
	node.Block = &mdast.BlockAttrs{HeadingLevel: level}
	return node, len(line), true
}

func tokenizeIndentedCode(_ *Context, text string, probe bool) (*mdast.Node, int, bool) {
	first := firstLine(text)
	if isBlank(first) || indentWidth(first) < codeIndent {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}

	var lines []string
	keep, consumed := 0, 0

	for pos := 0; pos >= 0; {
		end := lineEnd(text, pos)
		line := text[pos:end]

		if !isBlank(line) && indentWidth(line) < codeIndent {
			break
		}

		stripped, _ := stripColumns(line, codeIndent)
		lines = append(lines, stripped)
		if !isBlank(line) {
			keep = len(lines)
			consumed = end
		}

		pos = nextLine(text, end)
	}

	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Value = strings.Join(lines[:keep], "\n")
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}
	return node, consumed, true
}

func tokenizeFencedCode(_ *Context, text string, probe bool) (*mdast.Node, int, bool) {
	opening := firstLine(text)
	m := codeFenceRegexp.FindStringSubmatch(opening)
	if m == nil {
		return nil, 0, false
	}
	if probe {
		return nil, 0, true
	}

	indent, fence, info := len(m[1]), m[2], m[3]
	if fence == "" {
		fence, info = m[4], m[5]
	}

	var lines []string
	consumed := len(text)

	for pos := nextLine(text, len(opening)); pos >= 0; {
		end := lineEnd(text, pos)
		line := text[pos:end]

		if c := codeFenceCloserRegexp.FindStringSubmatch(line); c != nil &&
			c[1][0] == fence[0] && len(c[1]) >= len(fence) {
			consumed = end
			break
		}

		lines = append(lines, stripSpaces(line, indent))
		pos = nextLine(text, end)
	}

	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Value = strings.Join(lines, "\n")
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
		FenceChar:   fence[0],
		FenceLength: len(fence),
		Info:        strings.TrimSpace(info),
	}}
	return node, consumed, true
}

func stripSpaces(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}
