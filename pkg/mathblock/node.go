package mathblock

import "github.com/yaklabco/gomdmath/pkg/mdast"

// Render hint for math nodes.
const (
	HName     = "div"
	ClassName = "math"
)

// NewNode builds the math node for a scan result. The node's Data hint
// renders it as a div of class "math" holding one text child equal to the
// value.
func NewNode(res Result) *mdast.Node {
	node := mdast.NewNode(mdast.NodeMath)
	node.Value = res.Value
	node.Block = &mdast.BlockAttrs{
		Math: &mdast.MathAttrs{
			Marker:      res.Fence.Marker,
			FenceLength: res.Fence.Count,
			Indent:      res.Fence.Indent,
			Closed:      res.Closed,
		},
	}
	node.Data = &mdast.Data{
		HName:       HName,
		HProperties: map[string]string{"className": ClassName},
		HChildren:   []*mdast.Node{mdast.NewText(res.Value)},
	}
	return node
}
