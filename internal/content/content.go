package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/appcues/inkwell/internal/selection"
)

var (
	// ErrUnknownBlock means a selection endpoint references a block key
	// that does not exist in this content.
	ErrUnknownBlock = errors.New("content: unknown block key")

	// ErrOffsetRange means a selection endpoint's offset exceeds its
	// block's text length.
	ErrOffsetRange = errors.New("content: offset out of range")
)

// Content is an immutable ordered list of blocks with a key index. The
// zero value is an empty document.
type Content struct {
	blocks []Block
	index  map[string]int
}

// New builds a Content from blocks in order.
func New(blocks ...Block) Content {
	c := Content{blocks: blocks}
	c.reindex()
	return c
}

// FromText builds a Content with one block per line, generating keys.
func FromText(lines ...string) Content {
	blocks := make([]Block, len(lines))
	for i, l := range lines {
		blocks[i] = NewBlock(NewKey(), l)
	}
	return New(blocks...)
}

func (c *Content) reindex() {
	c.index = make(map[string]int, len(c.blocks))
	for i, b := range c.blocks {
		c.index[b.key] = i
	}
}

// Len returns the number of blocks.
func (c Content) Len() int { return len(c.blocks) }

// Block returns the block with the given key.
func (c Content) Block(key string) (Block, bool) {
	i, ok := c.index[key]
	if !ok {
		return Block{}, false
	}
	return c.blocks[i], true
}

// BlockAt returns the block at position i.
func (c Content) BlockAt(i int) Block { return c.blocks[i] }

// BlockIndex returns the position of the block with the given key, or -1.
func (c Content) BlockIndex(key string) int {
	i, ok := c.index[key]
	if !ok {
		return -1
	}
	return i
}

// Blocks returns a copy of the block list.
func (c Content) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// PlainText joins all block texts with sep.
func (c Content) PlainText(sep string) string {
	parts := make([]string, len(c.blocks))
	for i, b := range c.blocks {
		parts[i] = b.text
	}
	return strings.Join(parts, sep)
}

// Contains reports whether both selection endpoints reference existing
// blocks at valid offsets.
func (c Content) Contains(sel selection.State) bool {
	return c.checkPoint(sel.AnchorKey, sel.AnchorOffset) == nil &&
		c.checkPoint(sel.FocusKey, sel.FocusOffset) == nil
}

func (c Content) checkPoint(key string, offset int) error {
	b, ok := c.Block(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBlock, key)
	}
	if offset < 0 || offset > b.Len() {
		return fmt.Errorf("%w: %d in block %q (len %d)", ErrOffsetRange, offset, key, b.Len())
	}
	return nil
}

// ComparePoints orders two logical points: negative when a precedes b in
// document order, zero when equal. Unknown keys compare as equal to
// everything; callers validate first.
func (c Content) ComparePoints(aKey string, aOff int, bKey string, bOff int) int {
	ai, bi := c.BlockIndex(aKey), c.BlockIndex(bKey)
	if ai != bi {
		return ai - bi
	}
	return aOff - bOff
}

// withBlocks returns a new Content with the given block list.
func withBlocks(blocks []Block) Content {
	return New(blocks...)
}
