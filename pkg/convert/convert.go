// Package convert rewrites fenced code blocks that hold math into fenced
// math blocks, and rewrites math blocks into their canonical form.
//
// A code block is converted when its language is one of the configured math
// languages or, with detection enabled, when it has no language and its
// content is detected as TeX. Only blocks at the top level of the document
// are rewritten; blocks inside lists and blockquotes are left alone.
package convert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/gomdmath/pkg/blockparse"
	"github.com/yaklabco/gomdmath/pkg/edit"
	"github.com/yaklabco/gomdmath/pkg/langdetect"
	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yaklabco/gomdmath/pkg/mdast"
	gmparser "github.com/yaklabco/gomdmath/pkg/parser/goldmark"
)

// DefaultLanguages are the code block languages converted by default.
var DefaultLanguages = []string{"math", "latex", "tex", "katex"}

// Options configures a Converter.
type Options struct {
	// Languages lists the code block languages to convert. Matching is
	// case-insensitive. Empty means DefaultLanguages.
	Languages []string

	// Detect also converts code blocks without a language whose content is
	// detected as TeX.
	Detect bool

	// Marker and MinFence configure the math fence. Zero values use the
	// mathblock defaults.
	Marker   byte
	MinFence int

	// Flavor is the goldmark flavor used to find code blocks.
	Flavor string
}

// Block describes one converted or skipped code block.
type Block struct {
	// Lang is the code block language, empty for unlabelled blocks.
	Lang string

	// Value is the math value the block converts to.
	Value string

	// StartLine and EndLine are the 1-based lines of the opening and
	// closing fences.
	StartLine int
	EndLine   int

	// Detected reports whether the block was selected by TeX detection.
	Detected bool

	start, stop int
}

// Result is the outcome of converting one document.
type Result struct {
	// Output is the rewritten document. It equals the input when nothing
	// was converted.
	Output []byte

	// Converted lists the blocks that were rewritten, in document order.
	Converted []Block

	// Skipped lists candidate blocks whose value cannot be written as a math
	// block without changing it.
	Skipped []Block
}

// Changed reports whether any block was rewritten.
func (r *Result) Changed() bool {
	return len(r.Converted) > 0
}

// Converter rewrites math code blocks and reformats math blocks. A Converter
// is safe for concurrent use.
type Converter struct {
	languages []string
	detect    bool
	scanner   *mathblock.Scanner
	parser    *gmparser.Parser
	native    *blockparse.Parser
}

// New returns a converter for opts.
func New(opts Options) (*Converter, error) {
	languages := opts.Languages
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	normalized := make([]string, 0, len(languages))
	for _, lang := range languages {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(lang)))
	}

	var scanOpts []mathblock.Option
	if opts.Marker != 0 {
		scanOpts = append(scanOpts, mathblock.WithMarker(opts.Marker))
	}
	if opts.MinFence != 0 {
		scanOpts = append(scanOpts, mathblock.WithMinFence(opts.MinFence))
	}

	native, err := blockparse.New(mathblock.NewPlugin(scanOpts...))
	if err != nil {
		return nil, fmt.Errorf("build math parser: %w", err)
	}

	return &Converter{
		languages: normalized,
		detect:    opts.Detect,
		scanner:   mathblock.NewScanner(scanOpts...),
		parser:    gmparser.New(opts.Flavor, scanOpts...),
		native:    native,
	}, nil
}

// Convert rewrites the math code blocks of source.
func (c *Converter) Convert(source []byte) (*Result, error) {
	snapshot := mdast.NewFileSnapshot("", source)
	doc := c.parser.ParseAST(source)
	result := &Result{}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			continue
		}

		block, ok := c.candidate(fcb, source)
		if !ok {
			continue
		}
		block.StartLine = snapshot.PointAt(block.start).Line
		block.EndLine = snapshot.PointAt(block.stop).Line

		if c.scanner.RoundTrips(block.Value) {
			result.Converted = append(result.Converted, block)
		} else {
			result.Skipped = append(result.Skipped, block)
		}
	}

	return c.finish(result, source)
}

// candidate reports whether fcb should become a math block and locates it.
func (c *Converter) candidate(fcb *ast.FencedCodeBlock, source []byte) (Block, bool) {
	code := codeOf(fcb, source)

	var block Block
	if fcb.Info != nil {
		block.Lang = strings.ToLower(firstField(string(fcb.Info.Value(source))))
	}

	switch {
	case block.Lang != "":
		if !slices.Contains(c.languages, block.Lang) {
			return Block{}, false
		}
	case c.detect && langdetect.IsTeX([]byte(code)):
		block.Detected = true
	default:
		return Block{}, false
	}

	start, stop, ok := bounds(fcb, source)
	if !ok {
		return Block{}, false
	}

	block.Value = mathblock.TrimBlankLines(code)
	block.start, block.stop = start, stop
	return block, true
}

// finish splices the converted blocks of result into source.
func (c *Converter) finish(result *Result, source []byte) (*Result, error) {
	edits := make([]edit.Edit, 0, len(result.Converted))
	for _, block := range result.Converted {
		edits = append(edits, edit.Edit{
			Start: block.start,
			End:   block.stop,
			Text:  mathblock.Stringify(block.Value, c.scanner.Marker()),
		})
	}

	output, err := edit.Apply(source, edits)
	if err != nil {
		return nil, fmt.Errorf("rewrite blocks: %w", err)
	}
	result.Output = output
	return result, nil
}

// bounds returns the byte range of a fenced code block from the start of its
// opening fence line to the end of its closing fence line, without the final
// line break. Blocks without a language or content cannot be located.
func bounds(fcb *ast.FencedCodeBlock, source []byte) (int, int, bool) {
	lines := fcb.Lines()

	var openStart, afterContent int
	switch {
	case fcb.Info != nil:
		openStart = lineStart(source, fcb.Info.Segment.Start)
		afterContent = nextLineStart(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		first := lineStart(source, lines.At(0).Start)
		if first == 0 {
			return 0, 0, false
		}
		openStart = lineStart(source, first-1)
	default:
		return 0, 0, false
	}
	if lines.Len() > 0 {
		afterContent = lines.At(lines.Len() - 1).Stop
	}

	fenceChar, fenceLen := fenceOf(source[openStart:])
	closeEnd := lineEnd(source, afterContent)
	if afterContent < len(source) && isClosingFence(source[afterContent:closeEnd], fenceChar, fenceLen) {
		return openStart, closeEnd, true
	}

	// Unclosed blocks run to the end of their content.
	stop := afterContent
	for stop > openStart && (source[stop-1] == '\n' || source[stop-1] == '\r') {
		stop--
	}
	return openStart, stop, true
}

func codeOf(fcb *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := fcb.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.WriteString(strings.Repeat(" ", seg.Padding))
		b.Write(seg.Value(source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// fenceOf returns the fence character and run length at the start of line.
func fenceOf(line []byte) (byte, int) {
	pos := 0
	for pos < len(line) && line[pos] == ' ' {
		pos++
	}
	if pos >= len(line) {
		return 0, 0
	}

	char := line[pos]
	n := 0
	for pos+n < len(line) && line[pos+n] == char {
		n++
	}
	return char, n
}

func isClosingFence(line []byte, char byte, length int) bool {
	if char == 0 {
		return false
	}

	c, n := fenceOf(line)
	if c != char || n < length {
		return false
	}

	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	if indent > 3 {
		return false
	}

	rest := strings.TrimRight(string(line[indent+n:]), " \t\r")
	return rest == ""
}

func lineStart(source []byte, offset int) int {
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}

func lineEnd(source []byte, offset int) int {
	for offset < len(source) && source[offset] != '\n' {
		offset++
	}
	return offset
}

func nextLineStart(source []byte, offset int) int {
	end := lineEnd(source, offset)
	if end < len(source) {
		return end + 1
	}
	return end
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
