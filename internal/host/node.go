// Package host provides the render-tree surface the reconciliation layer
// talks to: nodes with parents, text payloads, and string attributes, plus a
// single-range native selection object with an optional extend capability.
// It stands in for a UI toolkit's node-and-offset selection primitive so the
// core stays testable without a live host environment.
package host

// Node is a host render-tree node. Element nodes carry children; text nodes
// carry a rune payload. Nodes are mutable on the host side; the logical
// document model never is.
type Node struct {
	parent   *Node
	children []*Node
	text     string
	isText   bool
	attrs    map[string]string
}

// NewElement creates an empty element node.
func NewElement() *Node {
	return &Node{}
}

// NewText creates a text node with the given payload.
func NewText(text string) *Node {
	return &Node{text: text, isText: true}
}

// AppendChild attaches c as the last child of n and returns n for chaining.
// Appending to a text node is ignored.
func (n *Node) AppendChild(c *Node) *Node {
	if n.isText || c == nil {
		return n
	}
	c.parent = n
	n.children = append(n.children, c)
	return n
}

// Detach removes n from its parent, leaving it (and its subtree) unattached.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns the node's parent, or nil at the root or when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.isText
}

// Text returns a text node's payload; empty for elements.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces a text node's payload.
func (n *Node) SetText(text string) {
	if n.isText {
		n.text = text
	}
}

// Length returns the node's content length: the rune count for text nodes,
// the child count for elements. Selection offsets into a node are bounded
// by this value.
func (n *Node) Length() int {
	if n.isText {
		return len([]rune(n.text))
	}
	return len(n.children)
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute and returns n for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// Contains reports whether other is n itself or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Root walks up to the topmost ancestor.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// subtreeTextLen is the total rune count of all text leaves under n.
func subtreeTextLen(n *Node) int {
	if n.isText {
		return n.Length()
	}
	total := 0
	for _, c := range n.children {
		total += subtreeTextLen(c)
	}
	return total
}

// position resolves (target, offset) to an absolute rune position within
// root's text content, walking leaves in document order. For element nodes
// the offset counts children, matching the host convention. Returns false
// when target is not under root.
func position(root, target *Node, offset int) (int, bool) {
	acc := 0
	found := positionWalk(root, target, offset, &acc)
	return acc, found
}

func positionWalk(cur, target *Node, targetOff int, acc *int) bool {
	if cur == target {
		if cur.isText {
			if targetOff > cur.Length() {
				targetOff = cur.Length()
			}
			*acc += targetOff
			return true
		}
		for i := 0; i < targetOff && i < len(cur.children); i++ {
			*acc += subtreeTextLen(cur.children[i])
		}
		return true
	}
	if cur.isText {
		*acc += cur.Length()
		return false
	}
	for _, c := range cur.children {
		if positionWalk(c, target, targetOff, acc) {
			return true
		}
	}
	return false
}

// textContent concatenates all text leaves under n in document order.
func textContent(n *Node) string {
	if n.isText {
		return n.text
	}
	out := ""
	for _, c := range n.children {
		out += textContent(c)
	}
	return out
}
