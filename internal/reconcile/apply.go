// Package reconcile keeps the host's native selection in sync with the
// logical selection state, and resolves host points back into logical
// selections. The host selection handle is always passed in explicitly;
// nothing here reaches for ambient global state.
package reconcile

import (
	"github.com/appcues/inkwell/internal/host"
	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/selection"
)

// ApplySelection reconciles one rendered text run against the logical
// selection. It is invoked once per visible run, in document order, during
// a render pass; a selection whose endpoints live in different runs
// accumulates in the host selection across calls.
//
// node covers the block's character span [nodeStart, nodeEnd]. Runs whose
// node is no longer attached under root are skipped; the render may be
// stale relative to the event that produced it.
func ApplySelection(hostSel *host.Selection, root *host.Node, st selection.State, node *host.Node, blockKey string, nodeStart, nodeEnd int) {
	if !root.Contains(node) {
		log.Debug(log.CatSelection, "skipping detached node", "block", blockKey)
		return
	}

	// Hosts without extend can only grow a selection forward from its
	// first point. Swap the endpoints and treat the selection as forward;
	// the visual endpoints are identical.
	if !hostSel.CanExtend() && st.IsBackward {
		st = st.Swapped()
	}

	hasAnchor := st.AnchorKey == blockKey &&
		nodeStart <= st.AnchorOffset && st.AnchorOffset <= nodeEnd
	hasFocus := st.FocusKey == blockKey &&
		nodeStart <= st.FocusOffset && st.FocusOffset <= nodeEnd

	// Both endpoints land on this node: the whole selection is set in
	// this one call.
	if hasAnchor && hasFocus {
		hostSel.RemoveAllRanges()
		setPoint(hostSel, node, st.AnchorOffset-nodeStart, st)
		growTo(hostSel, node, st.FocusOffset-nodeStart, st)
		return
	}

	if !st.IsBackward {
		// Forward: the anchor's run is visited first; the focus run
		// later grows the range started here.
		if hasAnchor {
			hostSel.RemoveAllRanges()
			setPoint(hostSel, node, st.AnchorOffset-nodeStart, st)
		}
		if hasFocus {
			growTo(hostSel, node, st.FocusOffset-nodeStart, st)
		}
		return
	}

	// Backward, only reachable on hosts with extend: the focus's run is
	// visited first in document order.
	if hasFocus {
		hostSel.RemoveAllRanges()
		setPoint(hostSel, node, st.FocusOffset-nodeStart, st)
	}
	if hasAnchor {
		// The range currently starts at the focus point. Capture it,
		// restart anchored here, then extend back to the captured focus
		// so the host ends up with a true backward range.
		storedFocusNode := hostSel.FocusNode()
		storedFocusOffset := hostSel.FocusOffset()
		hostSel.RemoveAllRanges()
		setPoint(hostSel, node, st.AnchorOffset-nodeStart, st)
		if storedFocusNode != nil {
			growTo(hostSel, storedFocusNode, storedFocusOffset, st)
		}
	}
}

// setPoint collapses the host selection at (node, offset), logging a
// diagnostic first when the offset exceeds the node's content. The host
// call is still attempted; a fault is logged, not raised.
func setPoint(hostSel *host.Selection, node *host.Node, offset int, st selection.State) {
	warnIfMalformed(node, offset, st)
	if err := hostSel.Collapse(node, offset); err != nil {
		log.ErrorErr(log.CatHost, "collapse failed", err, "selection", st)
	}
}

// growTo moves the selection's end to (node, offset): via extend when the
// host supports it, otherwise via the forward-only SetEnd primitive.
func growTo(hostSel *host.Selection, node *host.Node, offset int, st selection.State) {
	warnIfMalformed(node, offset, st)
	var err error
	if hostSel.CanExtend() {
		err = hostSel.Extend(node, offset)
	} else {
		err = hostSel.SetEnd(node, offset)
	}
	if err != nil {
		log.ErrorErr(log.CatHost, "grow failed", err, "selection", st)
	}
}

// warnIfMalformed records the diagnostic for an offset beyond the node's
// content length: a mismatch between the logical selection and what was
// rendered. The snapshot is anonymized, lengths and offsets only, never
// text.
func warnIfMalformed(node *host.Node, offset int, st selection.State) {
	if offset <= node.Length() {
		return
	}
	log.Warn(log.CatSelection, "selection offset exceeds node content",
		"offset", offset,
		"nodeLen", node.Length(),
		"isText", node.IsText(),
		"selection", st,
	)
}
