package mdast

// NewNode creates a detached node of the given kind with no position.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewText creates a text leaf holding value.
func NewText(value string) *Node {
	return &Node{Kind: NodeText, Value: value}
}

// NewDocument creates an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild makes child the last child of parent. A child that already
// belongs to a tree is detached from it first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	child.detach()

	child.Parent = parent
	child.Prev = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// AppendChildren appends each child in order.
func AppendChildren(parent *Node, children []*Node) {
	for _, child := range children {
		AppendChild(parent, child)
	}
}

// detach removes n from its parent, leaving its own children in place.
func (n *Node) detach() {
	parent := n.Parent
	if parent == nil {
		return
	}

	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		parent.LastChild = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}
