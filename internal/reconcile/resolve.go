package reconcile

import (
	"strings"

	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/host"
	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/selection"
)

// OffsetKeyAttr is the node attribute carrying a rendered run's logical
// offset key. The rendering layer tags every text-run wrapper with it.
const OffsetKeyAttr = "data-offset-key"

// OffsetKey builds the offset key for a block's first decorator/leaf pair.
func OffsetKey(blockKey string) string {
	return blockKey + "-0-0"
}

// blockKeyFromOffsetKey strips the decorator/leaf suffix.
func blockKeyFromOffsetKey(key string) string {
	if i := strings.IndexByte(key, '-'); i >= 0 {
		return key[:i]
	}
	return key
}

// findAncestorOffsetKey walks upward from n (inclusive) to the nearest
// node tagged with an offset key.
func findAncestorOffsetKey(n *host.Node) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if v, ok := cur.Attr(OffsetKeyAttr); ok {
			return v, true
		}
	}
	return "", false
}

// ResolvePoint maps a host point (a node plus a raw offset within it) to
// a collapsed logical selection usable as a drop or click target. Returns
// nil when the host could not produce a point (node is nil), when no
// ancestor carries an offset key, or when the key does not map into the
// content model. Both endpoints are identical by construction: this is a
// point resolution, not a range resolution.
func ResolvePoint(c content.Content, node *host.Node, rawOffset int) *selection.State {
	if node == nil {
		log.Debug(log.CatResolve, "no host point under cursor")
		return nil
	}
	key, ok := findAncestorOffsetKey(node)
	if !ok {
		log.Debug(log.CatResolve, "no offset key on node or ancestors")
		return nil
	}
	blockKey := blockKeyFromOffsetKey(key)
	block, ok := c.Block(blockKey)
	if !ok {
		log.Debug(log.CatResolve, "offset key names unknown block", "block", blockKey)
		return nil
	}

	offset := blockOffset(node, blockKey, rawOffset)
	if offset < 0 {
		offset = 0
	}
	if offset > block.Len() {
		offset = block.Len()
	}

	st := selection.CollapsedAt(blockKey, offset)
	log.Debug(log.CatResolve, "resolved point", "selection", st)
	return &st
}

// blockOffset converts a node-relative raw offset to a block-relative one
// by locating the node's run span. Element nodes resolve to the block
// start; their raw offset counts children, not characters.
func blockOffset(node *host.Node, blockKey string, rawOffset int) int {
	if !node.IsText() {
		return 0
	}
	for _, r := range RunsFromTree(node.Root()) {
		if r.Node == node && r.BlockKey == blockKey {
			return r.Start + rawOffset
		}
	}
	return rawOffset
}

// ReadSelection translates the host's live selection back into a logical
// selection. Returns nil when the host has no active range or when either
// endpoint cannot be mapped into the content model. This is the inverse of
// Reconcile; applying a selection and reading it back round-trips.
func ReadSelection(hostSel *host.Selection, c content.Content) *selection.State {
	if hostSel.RangeCount() == 0 {
		return nil
	}
	anchorKey, anchorOff, ok := mapPoint(hostSel.AnchorNode(), hostSel.AnchorOffset(), c)
	if !ok {
		return nil
	}
	focusKey, focusOff, ok := mapPoint(hostSel.FocusNode(), hostSel.FocusOffset(), c)
	if !ok {
		return nil
	}
	return &selection.State{
		AnchorKey:    anchorKey,
		AnchorOffset: anchorOff,
		FocusKey:     focusKey,
		FocusOffset:  focusOff,
		IsBackward:   hostSel.IsBackward(),
	}
}

func mapPoint(node *host.Node, offset int, c content.Content) (string, int, bool) {
	if node == nil {
		return "", 0, false
	}
	key, ok := findAncestorOffsetKey(node)
	if !ok {
		return "", 0, false
	}
	blockKey := blockKeyFromOffsetKey(key)
	if _, ok := c.Block(blockKey); !ok {
		return "", 0, false
	}
	return blockKey, blockOffset(node, blockKey, offset), true
}
