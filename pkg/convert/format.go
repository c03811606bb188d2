package convert

import (
	"bytes"

	"github.com/yaklabco/gomdmath/pkg/mathblock"
	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// Format rewrites the top-level math blocks of source in canonical form: two
// markers, the value, two markers. Blocks already in canonical form are left
// out of the result. Blocks whose value would change when rewritten are
// reported as skipped.
func (c *Converter) Format(source []byte) (*Result, error) {
	snapshot := mdast.NewFileSnapshot("", source)
	doc := c.native.Parse(string(source))
	result := &Result{}

	for _, node := range mdast.TopLevel(doc, mdast.NodeMath) {
		text := bytes.TrimRight(node.Text(source), "\n")
		if string(text) == mathblock.Stringify(node.Value, c.scanner.Marker()) {
			continue
		}
		start := node.Position.Start.Offset
		stop := start + len(text)

		block := Block{
			Value:     node.Value,
			StartLine: node.Position.Start.Line,
			EndLine:   snapshot.PointAt(stop).Line,
			start:     start,
			stop:      stop,
		}
		if c.scanner.RoundTrips(block.Value) {
			result.Converted = append(result.Converted, block)
		} else {
			result.Skipped = append(result.Skipped, block)
		}
	}

	return c.finish(result, source)
}

// Blocks returns the math blocks of source as read by the converter's
// native parser, including blocks nested in containers.
func (c *Converter) Blocks(source []byte) []*mdast.Node {
	return mdast.FindByKind(c.native.Parse(string(source)), mdast.NodeMath)
}
