package mathblock

import (
	"strings"

	"github.com/yaklabco/gomdmath/pkg/mdast"
)

// canonicalFence is the marker run length used when serializing.
const canonicalFence = 2

// Stringify returns the canonical fenced form of value: two markers, a line
// break, the value, a line break and two closing markers. The original fence
// length and indentation are not preserved.
func Stringify(value string, marker byte) string {
	fence := strings.Repeat(string(marker), canonicalFence)

	var b strings.Builder
	b.Grow(len(value) + 2*canonicalFence + 2)
	b.WriteString(fence)
	b.WriteByte('\n')
	b.WriteString(value)
	b.WriteByte('\n')
	b.WriteString(fence)
	return b.String()
}

// StringifyNode serializes a math node. Nodes without fence attributes use
// DefaultMarker.
func StringifyNode(node *mdast.Node) string {
	marker := DefaultMarker
	if attrs := node.Math(); attrs != nil && attrs.Marker != 0 {
		marker = attrs.Marker
	}
	return Stringify(node.Value, marker)
}

// RoundTrips reports whether Stringify(value, marker) scans back to value
// with s. It fails for values that carry leading or trailing blank lines or
// contain a line that would close a two-marker fence.
func (s *Scanner) RoundTrips(value string) bool {
	res, ok := s.Scan(Stringify(value, s.marker), false)
	return ok && res.Closed && res.Value == value
}
