package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTree returns a root with two element children, each wrapping one
// text leaf: ["hello world", "second line"].
func buildTree() (root, leafA, leafB *Node) {
	root = NewElement()
	leafA = NewText("hello world")
	leafB = NewText("second line")
	root.AppendChild(NewElement().AppendChild(leafA))
	root.AppendChild(NewElement().AppendChild(leafB))
	return root, leafA, leafB
}

func TestNode_Length(t *testing.T) {
	require.Equal(t, 5, NewText("hello").Length())
	require.Equal(t, 5, NewText("héllo").Length()) // runes, not bytes

	el := NewElement()
	el.AppendChild(NewText("a"))
	el.AppendChild(NewText("b"))
	require.Equal(t, 2, el.Length())
}

func TestNode_Contains(t *testing.T) {
	root, leafA, _ := buildTree()
	require.True(t, root.Contains(leafA))
	require.True(t, root.Contains(root))

	detached := NewText("x")
	require.False(t, root.Contains(detached))
}

func TestNode_Detach(t *testing.T) {
	root, leafA, _ := buildTree()
	wrapper := leafA.Parent()
	wrapper.Detach()
	require.False(t, root.Contains(leafA))
	require.Nil(t, wrapper.Parent())
	require.Equal(t, 1, root.Length())
}

func TestSelection_CollapseAndReadBack(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root)

	require.NoError(t, sel.Collapse(leafA, 3))
	require.Equal(t, 1, sel.RangeCount())
	require.True(t, sel.IsCollapsed())
	require.Same(t, leafA, sel.AnchorNode())
	require.Equal(t, 3, sel.AnchorOffset())
	require.Same(t, leafA, sel.FocusNode())
	require.Equal(t, 3, sel.FocusOffset())
}

func TestSelection_CollapseValidation(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root)

	require.ErrorIs(t, sel.Collapse(NewText("x"), 0), ErrDetachedNode)
	require.ErrorIs(t, sel.Collapse(leafA, 99), ErrOffsetOutOfRange)
	require.ErrorIs(t, sel.Collapse(leafA, -1), ErrOffsetOutOfRange)
	require.Equal(t, 0, sel.RangeCount())
}

func TestSelection_Extend(t *testing.T) {
	root, leafA, leafB := buildTree()
	sel := NewSelection(root)

	require.NoError(t, sel.Collapse(leafA, 2))
	require.NoError(t, sel.Extend(leafB, 4))
	require.False(t, sel.IsCollapsed())
	require.False(t, sel.IsBackward())
	require.Same(t, leafA, sel.AnchorNode())
	require.Same(t, leafB, sel.FocusNode())
}

func TestSelection_ExtendBackward(t *testing.T) {
	root, leafA, leafB := buildTree()
	sel := NewSelection(root)

	require.NoError(t, sel.Collapse(leafB, 4))
	require.NoError(t, sel.Extend(leafA, 2))
	require.True(t, sel.IsBackward())
}

func TestSelection_ExtendWithoutCapability(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root, WithoutExtend())

	require.False(t, sel.CanExtend())
	require.NoError(t, sel.Collapse(leafA, 0))
	require.ErrorIs(t, sel.Extend(leafA, 3), ErrNoExtend)
}

func TestSelection_ExtendWithoutRange(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root)
	require.ErrorIs(t, sel.Extend(leafA, 1), ErrNoRange)
}

func TestSelection_SetEndForward(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root, WithoutExtend())

	require.NoError(t, sel.Collapse(leafA, 0))
	require.NoError(t, sel.SetEnd(leafA, 5))
	require.Equal(t, "hello", sel.Text())
	require.False(t, sel.IsBackward())
}

func TestSelection_SetEndReordersWhenBeforeStart(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root, WithoutExtend())

	require.NoError(t, sel.Collapse(leafA, 5))
	require.NoError(t, sel.SetEnd(leafA, 0))

	// The range stays forward: endpoints are reordered rather than
	// producing a backward range.
	require.False(t, sel.IsBackward())
	require.Equal(t, "hello", sel.Text())
}

func TestSelection_TextAcrossNodes(t *testing.T) {
	root, leafA, leafB := buildTree()
	sel := NewSelection(root)

	require.NoError(t, sel.Collapse(leafA, 6))
	require.NoError(t, sel.Extend(leafB, 6))
	require.Equal(t, "worldsecond", sel.Text())
}

func TestSelection_TextBackwardMatchesForward(t *testing.T) {
	root, leafA, leafB := buildTree()

	fwd := NewSelection(root)
	require.NoError(t, fwd.Collapse(leafA, 6))
	require.NoError(t, fwd.Extend(leafB, 6))

	back := NewSelection(root)
	require.NoError(t, back.Collapse(leafB, 6))
	require.NoError(t, back.Extend(leafA, 6))

	require.Equal(t, fwd.Text(), back.Text())
}

func TestSelection_RemoveAllRanges(t *testing.T) {
	root, leafA, _ := buildTree()
	sel := NewSelection(root)

	require.NoError(t, sel.Collapse(leafA, 3))
	sel.RemoveAllRanges()
	require.Equal(t, 0, sel.RangeCount())
	require.True(t, sel.IsCollapsed())
	require.Nil(t, sel.AnchorNode())
	require.Equal(t, "", sel.Text())
}
