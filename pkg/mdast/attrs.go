package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs

	// Math holds fence attributes for NodeMath.
	Math *MathAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// BulletMarker is the bullet character used ("-", "+", "*").
	BulletMarker string

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Delimiter is the delimiter for ordered lists ("." or ")").
	Delimiter string

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// FenceChar is the fence character ('`' or '~').
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the info string (language identifier, etc.).
	Info string

	// Indented is true for indented code blocks (vs fenced).
	Indented bool
}

// MathAttrs holds the fence that delimited a math block.
type MathAttrs struct {
	// Marker is the fence byte, '$' unless configured otherwise.
	Marker byte

	// FenceLength is the length of the opening marker run.
	FenceLength int

	// Indent is the number of indentation bytes before the opening fence.
	Indent int

	// Closed is false when the block ran to the end of its container.
	Closed bool
}

// Data is a rendering hint: the element a node becomes in HTML output.
type Data struct {
	// HName is the element name, e.g. "div".
	HName string

	// HProperties are element attributes. The key "className" renders as
	// the class attribute.
	HProperties map[string]string

	// HChildren replace the node's own children when rendering.
	HChildren []*Node
}
