package content

import (
	"strings"
	"unicode/utf8"

	"github.com/appcues/inkwell/internal/selection"
)

// InsertText replaces the selected range with text carrying the given
// inline style and returns the new content. A collapsed selection is a
// pure insert. Newlines are inserted verbatim into the block's text;
// splitting blocks is a fragment operation outside this package.
func (c Content) InsertText(sel selection.State, text string, style StyleSet) (Content, error) {
	if err := c.validateRange(sel); err != nil {
		return c, err
	}
	if !sel.IsCollapsed() {
		removed, err := c.RemoveRange(sel)
		if err != nil {
			return c, err
		}
		c = removed
		sel = selection.CollapsedAt(sel.StartKey(), sel.StartOffset())
	}
	insLen := utf8.RuneCountInString(text)
	return c.spliceBlock(sel.StartKey(), sel.StartOffset(), 0, text, []Run{{Length: insLen, Style: style}})
}

// RemoveRange deletes the selected span and returns the new content. For a
// cross-block range the first and last blocks merge into one and the
// blocks between are dropped. A collapsed selection is a no-op.
func (c Content) RemoveRange(sel selection.State) (Content, error) {
	if err := c.validateRange(sel); err != nil {
		return c, err
	}
	if sel.IsCollapsed() {
		return c, nil
	}
	startKey, startOff := sel.StartKey(), sel.StartOffset()
	endKey, endOff := sel.EndKey(), sel.EndOffset()

	if startKey == endKey {
		if startOff > endOff {
			startOff, endOff = endOff, startOff
		}
		return c.spliceBlock(startKey, startOff, endOff-startOff, "", nil)
	}

	si, ei := c.BlockIndex(startKey), c.BlockIndex(endKey)
	if si > ei {
		si, ei = ei, si
		startOff, endOff = endOff, startOff
		startKey = c.blocks[si].key
	}
	first, last := c.blocks[si], c.blocks[ei]

	firstRunes := []rune(first.text)
	lastRunes := []rune(last.text)
	mergedText := string(firstRunes[:startOff]) + string(lastRunes[endOff:])
	mergedRuns := append(
		sliceRuns(first.runs, 0, startOff),
		sliceRuns(last.runs, endOff, last.Len())...,
	)

	blocks := make([]Block, 0, len(c.blocks)-(ei-si))
	blocks = append(blocks, c.blocks[:si]...)
	blocks = append(blocks, NewStyledBlock(startKey, mergedText, mergedRuns))
	blocks = append(blocks, c.blocks[ei+1:]...)
	return withBlocks(blocks), nil
}

// TextInRange returns the selected text, joining cross-block spans with
// newlines.
func (c Content) TextInRange(sel selection.State) (string, error) {
	if err := c.validateRange(sel); err != nil {
		return "", err
	}
	startKey, startOff := sel.StartKey(), sel.StartOffset()
	endKey, endOff := sel.EndKey(), sel.EndOffset()

	si, ei := c.BlockIndex(startKey), c.BlockIndex(endKey)
	if si > ei || (si == ei && startOff > endOff) {
		si, ei = ei, si
		startOff, endOff = endOff, startOff
	}

	if si == ei {
		runes := []rune(c.blocks[si].text)
		return string(runes[startOff:endOff]), nil
	}

	var parts []string
	for i := si; i <= ei; i++ {
		runes := []rune(c.blocks[i].text)
		switch i {
		case si:
			parts = append(parts, string(runes[startOff:]))
		case ei:
			parts = append(parts, string(runes[:endOff]))
		default:
			parts = append(parts, string(runes))
		}
	}
	return strings.Join(parts, "\n"), nil
}

// MoveText extracts the source span, removes it, and inserts it at the
// target point as one operation, so the move is a single content
// transition. A target inside the source span leaves the content
// unchanged. Cross-block spans collapse to newline-joined text at the
// target; the moved span's styles are preserved when the source is a
// single block.
func (c Content) MoveText(source, target selection.State) (Content, error) {
	if err := c.validateRange(source); err != nil {
		return c, err
	}
	if err := c.validateRange(target); err != nil {
		return c, err
	}
	if source.IsCollapsed() {
		return c, nil
	}

	tKey, tOff := target.StartKey(), target.StartOffset()
	if c.ComparePoints(source.StartKey(), source.StartOffset(), tKey, tOff) <= 0 &&
		c.ComparePoints(tKey, tOff, source.EndKey(), source.EndOffset()) <= 0 {
		// Dropping inside (or on the edge of) what is being moved.
		return c, nil
	}

	fragText, err := c.TextInRange(source)
	if err != nil {
		return c, err
	}
	var fragRuns []Run
	if source.StartKey() == source.EndKey() {
		b, _ := c.Block(source.StartKey())
		lo, hi := source.StartOffset(), source.EndOffset()
		if lo > hi {
			lo, hi = hi, lo
		}
		fragRuns = sliceRuns(b.Runs(), lo, hi)
	} else {
		fragRuns = []Run{{Length: utf8.RuneCountInString(fragText)}}
	}

	removed, err := c.RemoveRange(source)
	if err != nil {
		return c, err
	}
	adj := AdjustTargetForRemoval(c, source, target)
	return removed.spliceBlock(adj.StartKey(), adj.StartOffset(), 0, fragText, fragRuns)
}

// AdjustTargetForRemoval maps a drop point expressed against the content
// before a removal to the equivalent point after it. Points before the
// removed span are unchanged; points after it shift left (and, for
// cross-block removals, land in the merged block).
func AdjustTargetForRemoval(c Content, source, target selection.State) selection.State {
	tKey, tOff := target.StartKey(), target.StartOffset()
	startKey, startOff := source.StartKey(), source.StartOffset()
	endKey, endOff := source.EndKey(), source.EndOffset()

	if c.ComparePoints(tKey, tOff, endKey, endOff) < 0 {
		return selection.CollapsedAt(tKey, tOff)
	}
	if tKey == endKey {
		if startKey == endKey {
			return selection.CollapsedAt(tKey, tOff-(endOff-startOff))
		}
		// Cross-block removal merges the tail of the end block into the
		// start block.
		return selection.CollapsedAt(startKey, startOff+(tOff-endOff))
	}
	return selection.CollapsedAt(tKey, tOff)
}

func (c Content) validateRange(sel selection.State) error {
	if err := c.checkPoint(sel.AnchorKey, sel.AnchorOffset); err != nil {
		return err
	}
	return c.checkPoint(sel.FocusKey, sel.FocusOffset)
}

// spliceBlock rewrites one block: remove del runes at offset at, insert
// text with the given runs.
func (c Content) spliceBlock(key string, at, del int, text string, ins []Run) (Content, error) {
	i := c.BlockIndex(key)
	b := c.blocks[i]
	runes := []rune(b.text)
	newText := string(runes[:at]) + text + string(runes[at+del:])
	newRuns := spliceRuns(b.runs, at, del, ins)

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)
	blocks[i] = NewStyledBlock(key, newText, newRuns)
	return withBlocks(blocks), nil
}
