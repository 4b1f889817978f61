package ui

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// The content model addresses text by rune offset; the terminal addresses
// it by display column. These helpers translate between the two without
// ever splitting a grapheme cluster: a column inside a wide character or
// a multi-rune cluster snaps to the cluster's start.

// ColToRune maps a display column to the cluster-aligned rune offset
// covering it. Columns past the end of the string map to the rune count.
func ColToRune(s string, col int) int {
	if col <= 0 {
		return 0
	}
	runes, width := 0, 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if col < width+w {
			return runes
		}
		width += w
		runes += utf8.RuneCountInString(cluster)
		s = rest
		state = newState
	}
	return runes
}

// RuneToCol maps a rune offset to its display column. Offsets inside a
// cluster report the cluster's starting column.
func RuneToCol(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	runes, width := 0, 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		n := utf8.RuneCountInString(cluster)
		if offset < runes+n {
			return width
		}
		width += runewidth.StringWidth(cluster)
		runes += n
		s = rest
		state = newState
	}
	return width
}

// PrevCluster returns the rune offset of the start of the grapheme
// cluster preceding offset. Backspace deletes a whole cluster, not a
// lone combining mark.
func PrevCluster(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	prev, runes := 0, 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		n := utf8.RuneCountInString(cluster)
		if runes+n >= offset {
			return prev
		}
		prev = runes + n
		runes += n
		s = rest
		state = newState
	}
	return prev
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// SliceRunes returns the substring covering rune offsets [start, end).
func SliceRunes(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
