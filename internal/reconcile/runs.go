package reconcile

import (
	"github.com/appcues/inkwell/internal/host"
	"github.com/appcues/inkwell/internal/selection"
)

// TextRun ties one rendered text node to the block span it displays:
// the node shows the block's runes [Start, End).
type TextRun struct {
	Node     *host.Node
	BlockKey string
	Start    int
	End      int
}

// Reconcile applies the logical selection across a whole render pass,
// visiting runs in document order. This makes the per-node accumulation of
// ApplySelection explicit and drivable without a live render.
func Reconcile(hostSel *host.Selection, root *host.Node, st selection.State, runs []TextRun) {
	for _, r := range runs {
		ApplySelection(hostSel, root, st, r.Node, r.BlockKey, r.Start, r.End)
	}
}

// RunsFromTree collects the tagged text leaves under root in document
// order, computing each leaf's character span within its block. Multiple
// leaves carrying the same offset key accumulate offsets left to right.
func RunsFromTree(root *host.Node) []TextRun {
	var runs []TextRun
	seen := make(map[string]int)
	collectRuns(root, seen, &runs)
	return runs
}

func collectRuns(n *host.Node, seen map[string]int, runs *[]TextRun) {
	if n.IsText() {
		key, ok := findAncestorOffsetKey(n)
		if !ok {
			return
		}
		blockKey := blockKeyFromOffsetKey(key)
		start := seen[blockKey]
		end := start + n.Length()
		seen[blockKey] = end
		*runs = append(*runs, TextRun{Node: n, BlockKey: blockKey, Start: start, End: end})
		return
	}
	for _, c := range n.Children() {
		collectRuns(c, seen, runs)
	}
}
