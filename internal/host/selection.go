package host

import "errors"

// Selection faults. Collapse/SetEnd/Extend validate their target before
// touching the range; a failed call leaves the selection unchanged.
var (
	// ErrDetachedNode means the target node is not attached under the
	// selection's root container.
	ErrDetachedNode = errors.New("host: node not attached under selection root")

	// ErrOffsetOutOfRange means the requested offset exceeds the node's
	// content length.
	ErrOffsetOutOfRange = errors.New("host: offset out of range")

	// ErrNoRange means the selection has no active range to grow.
	ErrNoRange = errors.New("host: selection has no range")

	// ErrNoExtend means the host lacks the extend capability.
	ErrNoExtend = errors.New("host: extend not supported")
)

// Selection is the host's native selection primitive: at most one active
// range over the render tree rooted at root. The base surface is
// asymmetric: Collapse starts a caret and SetEnd can only grow the range
// forward from it. Extend, which moves the focus freely (allowing a true
// backward range), is an optional capability fixed at construction.
type Selection struct {
	root      *Node
	canExtend bool

	hasRange     bool
	anchorNode   *Node
	anchorOffset int
	focusNode    *Node
	focusOffset  int
}

// Option configures a Selection.
type Option func(*Selection)

// WithoutExtend removes the extend capability, modeling hosts whose
// selection can only grow forward from its first anchor point.
func WithoutExtend() Option {
	return func(s *Selection) { s.canExtend = false }
}

// NewSelection creates a selection over the tree rooted at root. Extend is
// available unless disabled via WithoutExtend.
func NewSelection(root *Node, opts ...Option) *Selection {
	s := &Selection{root: root, canExtend: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the selection's root container.
func (s *Selection) Root() *Node {
	return s.root
}

// CanExtend reports whether the host supports moving the focus
// independently of the anchor.
func (s *Selection) CanExtend() bool {
	return s.canExtend
}

// RangeCount returns 1 when a range is active, 0 otherwise.
func (s *Selection) RangeCount() int {
	if s.hasRange {
		return 1
	}
	return 0
}

// RemoveAllRanges clears the selection.
func (s *Selection) RemoveAllRanges() {
	s.hasRange = false
	s.anchorNode = nil
	s.focusNode = nil
	s.anchorOffset = 0
	s.focusOffset = 0
}

func (s *Selection) validate(n *Node, offset int) error {
	if n == nil || !s.root.Contains(n) {
		return ErrDetachedNode
	}
	if offset < 0 || offset > n.Length() {
		return ErrOffsetOutOfRange
	}
	return nil
}

// Collapse replaces any active range with a caret at (n, offset).
func (s *Selection) Collapse(n *Node, offset int) error {
	if err := s.validate(n, offset); err != nil {
		return err
	}
	s.hasRange = true
	s.anchorNode, s.anchorOffset = n, offset
	s.focusNode, s.focusOffset = n, offset
	return nil
}

// SetEnd grows the active range to end at (n, offset). This is the
// always-available forward primitive: if the new end precedes the current
// start in document order, the endpoints are reordered so the range stays
// forward.
func (s *Selection) SetEnd(n *Node, offset int) error {
	if !s.hasRange {
		return ErrNoRange
	}
	if err := s.validate(n, offset); err != nil {
		return err
	}
	startPos, _ := position(s.root, s.anchorNode, s.anchorOffset)
	endPos, _ := position(s.root, n, offset)
	if endPos < startPos {
		s.anchorNode, s.anchorOffset, s.focusNode, s.focusOffset =
			n, offset, s.anchorNode, s.anchorOffset
		return nil
	}
	s.focusNode, s.focusOffset = n, offset
	return nil
}

// Extend moves the focus to (n, offset), keeping the anchor. The focus may
// precede the anchor, producing a backward range. Fails on hosts without
// the capability.
func (s *Selection) Extend(n *Node, offset int) error {
	if !s.canExtend {
		return ErrNoExtend
	}
	if !s.hasRange {
		return ErrNoRange
	}
	if err := s.validate(n, offset); err != nil {
		return err
	}
	s.focusNode, s.focusOffset = n, offset
	return nil
}

// AnchorNode returns the node where the range starts, nil when empty.
func (s *Selection) AnchorNode() *Node { return s.anchorNode }

// AnchorOffset returns the offset within the anchor node.
func (s *Selection) AnchorOffset() int { return s.anchorOffset }

// FocusNode returns the node where the range ends, nil when empty.
func (s *Selection) FocusNode() *Node { return s.focusNode }

// FocusOffset returns the offset within the focus node.
func (s *Selection) FocusOffset() int { return s.focusOffset }

// IsCollapsed reports whether the selection is a caret (or empty).
func (s *Selection) IsCollapsed() bool {
	if !s.hasRange {
		return true
	}
	return s.anchorNode == s.focusNode && s.anchorOffset == s.focusOffset
}

// IsBackward reports whether the focus precedes the anchor in document
// order. Only reachable on hosts with the extend capability.
func (s *Selection) IsBackward() bool {
	if !s.hasRange {
		return false
	}
	a, _ := position(s.root, s.anchorNode, s.anchorOffset)
	f, _ := position(s.root, s.focusNode, s.focusOffset)
	return f < a
}

// Text returns the visible text content between the selection endpoints in
// document order.
func (s *Selection) Text() string {
	if !s.hasRange {
		return ""
	}
	a, aok := position(s.root, s.anchorNode, s.anchorOffset)
	f, fok := position(s.root, s.focusNode, s.focusOffset)
	if !aok || !fok {
		return ""
	}
	lo, hi := a, f
	if lo > hi {
		lo, hi = hi, lo
	}
	all := []rune(textContent(s.root))
	if lo < 0 || hi > len(all) {
		return ""
	}
	return string(all[lo:hi])
}
