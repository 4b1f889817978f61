// Package content holds the immutable logical document model: an ordered
// list of blocks addressed by stable keys, with pure mutation operations
// that return new values. Offsets throughout are rune offsets.
package content

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NewKey generates a fresh block key.
func NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Run is a span of uniformly-styled text within a block.
type Run struct {
	Length int
	Style  StyleSet
}

// Block is an addressable unit of document content: a stable key plus text
// and its style runs. Blocks are immutable.
type Block struct {
	key  string
	text string
	runs []Run
}

// NewBlock creates an unstyled block.
func NewBlock(key, text string) Block {
	return Block{key: key, text: text, runs: normalizeRuns(nil, utf8.RuneCountInString(text))}
}

// NewStyledBlock creates a block with explicit style runs. Runs are
// normalized; their lengths must sum to the text's rune count.
func NewStyledBlock(key, text string, runs []Run) Block {
	return Block{key: key, text: text, runs: normalizeRuns(runs, utf8.RuneCountInString(text))}
}

// Key returns the block's stable key.
func (b Block) Key() string { return b.key }

// Text returns the block's text.
func (b Block) Text() string { return b.text }

// Len returns the block's text length in runes.
func (b Block) Len() int { return utf8.RuneCountInString(b.text) }

// Runs returns the block's style runs in order. Lengths sum to Len().
func (b Block) Runs() []Run {
	out := make([]Run, len(b.runs))
	copy(out, b.runs)
	return out
}

// StyleAt returns the style at the given rune offset; the empty set when
// out of range.
func (b Block) StyleAt(offset int) StyleSet {
	pos := 0
	for _, r := range b.runs {
		if offset < pos+r.Length {
			return r.Style
		}
		pos += r.Length
	}
	return StyleSet{}
}

// normalizeRuns makes runs cover exactly textLen runes: nil or empty input
// becomes one unstyled run, zero-length runs are dropped, adjacent runs
// with equal styles merge, and a trailing shortfall is padded unstyled.
func normalizeRuns(runs []Run, textLen int) []Run {
	out := make([]Run, 0, len(runs)+1)
	total := 0
	for _, r := range runs {
		if r.Length <= 0 {
			continue
		}
		if total+r.Length > textLen {
			r.Length = textLen - total
			if r.Length <= 0 {
				break
			}
		}
		if len(out) > 0 && out[len(out)-1].Style.Equal(r.Style) {
			out[len(out)-1].Length += r.Length
		} else {
			out = append(out, r)
		}
		total += r.Length
	}
	if total < textLen {
		pad := Run{Length: textLen - total}
		if len(out) > 0 && out[len(out)-1].Style.Equal(pad.Style) {
			out[len(out)-1].Length += pad.Length
		} else {
			out = append(out, pad)
		}
	}
	return out
}

// spliceRuns removes del runes at offset at and inserts ins runs there.
func spliceRuns(runs []Run, at, del int, ins []Run) []Run {
	var out []Run
	pos := 0
	inserted := false

	emit := func(r Run) {
		if r.Length <= 0 {
			return
		}
		if len(out) > 0 && out[len(out)-1].Style.Equal(r.Style) {
			out[len(out)-1].Length += r.Length
		} else {
			out = append(out, r)
		}
	}
	insertNow := func() {
		for _, r := range ins {
			emit(r)
		}
		inserted = true
	}

	delEnd := at + del
	for _, r := range runs {
		runStart, runEnd := pos, pos+r.Length
		pos = runEnd

		// Portion before the deletion window.
		if runStart < at {
			keep := min(runEnd, at) - runStart
			emit(Run{Length: keep, Style: r.Style})
		}
		if !inserted && runEnd >= at {
			insertNow()
		}
		// Portion after the deletion window.
		if runEnd > delEnd {
			keep := runEnd - max(runStart, delEnd)
			emit(Run{Length: keep, Style: r.Style})
		}
	}
	if !inserted {
		insertNow()
	}
	return out
}

// sliceRuns extracts the runs covering [start, end).
func sliceRuns(runs []Run, start, end int) []Run {
	var out []Run
	pos := 0
	for _, r := range runs {
		runStart, runEnd := pos, pos+r.Length
		pos = runEnd
		lo := max(runStart, start)
		hi := min(runEnd, end)
		if hi > lo {
			out = append(out, Run{Length: hi - lo, Style: r.Style})
		}
	}
	return out
}
