// Package selection defines the immutable logical selection value: a pair of
// (block key, rune offset) endpoints plus a direction flag. The anchor is
// where the selection gesture started; the focus is where it currently ends.
// Values are never mutated in place; every change constructs a new State.
package selection

import "fmt"

// State describes where the cursor or selection sits in the logical document.
// Offsets are rune offsets into the block's text, independent of rendering.
type State struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int

	// IsBackward is true when the focus precedes the anchor in document
	// order (the user selected right-to-left or bottom-to-top).
	IsBackward bool
}

// CollapsedAt returns a caret selection with both endpoints at key/offset.
func CollapsedAt(key string, offset int) State {
	return State{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
	}
}

// IsCollapsed reports whether anchor and focus are the same point.
func (s State) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// Swapped exchanges the anchor and focus pairs and clears the backward flag.
// This is the emulation used on hosts whose selection primitive can only
// grow forward from its first point: the swapped selection has the same
// visual endpoints but reads as forward.
func (s State) Swapped() State {
	return State{
		AnchorKey:    s.FocusKey,
		AnchorOffset: s.FocusOffset,
		FocusKey:     s.AnchorKey,
		FocusOffset:  s.AnchorOffset,
	}
}

// WithFocus returns a copy with the focus endpoint moved. The backward flag
// is left untouched; callers that move the focus across the anchor are
// responsible for updating it.
func (s State) WithFocus(key string, offset int) State {
	s.FocusKey = key
	s.FocusOffset = offset
	return s
}

// WithAnchor returns a copy with the anchor endpoint moved.
func (s State) WithAnchor(key string, offset int) State {
	s.AnchorKey = key
	s.AnchorOffset = offset
	return s
}

// StartKey returns the document-order first endpoint's block key: the anchor
// for forward selections, the focus for backward ones.
func (s State) StartKey() string {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

// StartOffset returns the document-order first endpoint's offset.
func (s State) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

// EndKey returns the document-order last endpoint's block key.
func (s State) EndKey() string {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

// EndOffset returns the document-order last endpoint's offset.
func (s State) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// String renders the selection for logs: "B1:3..B2:7" with a trailing "<"
// marker when backward.
func (s State) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("%s:%d", s.AnchorKey, s.AnchorOffset)
	}
	dir := ""
	if s.IsBackward {
		dir = "<"
	}
	return fmt.Sprintf("%s:%d..%s:%d%s", s.AnchorKey, s.AnchorOffset, s.FocusKey, s.FocusOffset, dir)
}
