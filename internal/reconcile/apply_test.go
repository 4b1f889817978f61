package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/host"
	"github.com/appcues/inkwell/internal/selection"
)

// renderTree builds the host tree a render pass would produce: one tagged
// wrapper element per block, each holding a single text leaf.
func renderTree(c content.Content) (*host.Node, map[string]*host.Node) {
	root := host.NewElement()
	leaves := make(map[string]*host.Node)
	for _, b := range c.Blocks() {
		leaf := host.NewText(b.Text())
		wrapper := host.NewElement().SetAttr(OffsetKeyAttr, OffsetKey(b.Key()))
		wrapper.AppendChild(leaf)
		root.AppendChild(wrapper)
		leaves[b.Key()] = leaf
	}
	return root, leaves
}

// renderSplitTree renders one block as two sibling text leaves sharing an
// offset key, splitting the text at cut.
func renderSplitTree(b content.Block, cut int) (*host.Node, *host.Node, *host.Node) {
	runes := []rune(b.Text())
	first := host.NewText(string(runes[:cut]))
	second := host.NewText(string(runes[cut:]))
	wrapper := host.NewElement().SetAttr(OffsetKeyAttr, OffsetKey(b.Key()))
	wrapper.AppendChild(first)
	wrapper.AppendChild(second)
	root := host.NewElement()
	root.AppendChild(wrapper)
	return root, first, second
}

func TestReconcile_RoundTrip_SingleRun(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(t, "len")
		text := strings.Repeat("x", n)
		c := content.New(content.NewBlock("B1", text))
		root, _ := renderTree(c)
		hostSel := host.NewSelection(root)

		anchor := rapid.IntRange(0, n).Draw(t, "anchor")
		focus := rapid.IntRange(anchor, n).Draw(t, "focus")
		st := selection.CollapsedAt("B1", anchor).WithFocus("B1", focus)

		Reconcile(hostSel, root, st, RunsFromTree(root))

		got := ReadSelection(hostSel, c)
		require.NotNil(t, got)
		require.Equal(t, st.AnchorKey, got.AnchorKey)
		require.Equal(t, st.AnchorOffset, got.AnchorOffset)
		require.Equal(t, st.FocusKey, got.FocusKey)
		require.Equal(t, st.FocusOffset, got.FocusOffset)
		require.False(t, got.IsBackward)
	})
}

func TestReconcile_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := content.New(
			content.NewBlock("B1", "hello world"),
			content.NewBlock("B2", "second line"),
		)
		root, _ := renderTree(c)
		hostSel := host.NewSelection(root)
		runs := RunsFromTree(root)

		anchor := rapid.IntRange(0, 11).Draw(t, "anchor")
		focus := rapid.IntRange(0, 11).Draw(t, "focus")
		keys := []string{"B1", "B2"}
		st := selection.CollapsedAt(keys[rapid.IntRange(0, 1).Draw(t, "ak")], anchor).
			WithFocus(keys[rapid.IntRange(0, 1).Draw(t, "fk")], focus)
		st.IsBackward = c.ComparePoints(st.FocusKey, st.FocusOffset, st.AnchorKey, st.AnchorOffset) < 0

		Reconcile(hostSel, root, st, runs)
		first := ReadSelection(hostSel, c)

		Reconcile(hostSel, root, st, runs)
		second := ReadSelection(hostSel, c)

		require.Equal(t, first, second)
	})
}

func TestReconcile_BackwardEmulation_MatchesSwappedForward(t *testing.T) {
	c := content.New(
		content.NewBlock("B1", "hello world"),
		content.NewBlock("B2", "second line"),
	)

	backward := selection.State{
		AnchorKey: "B2", AnchorOffset: 4,
		FocusKey: "B1", FocusOffset: 2,
		IsBackward: true,
	}

	rootA, _ := renderTree(c)
	selA := host.NewSelection(rootA, host.WithoutExtend())
	Reconcile(selA, rootA, backward, RunsFromTree(rootA))

	rootB, _ := renderTree(c)
	selB := host.NewSelection(rootB, host.WithoutExtend())
	Reconcile(selB, rootB, backward.Swapped(), RunsFromTree(rootB))

	// Same visual endpoints, both forward.
	require.Equal(t, selA.Text(), selB.Text())
	require.False(t, selA.IsBackward())
	require.False(t, selB.IsBackward())

	got := ReadSelection(selA, c)
	require.NotNil(t, got)
	require.Equal(t, "B1", got.AnchorKey)
	require.Equal(t, 2, got.AnchorOffset)
	require.Equal(t, "B2", got.FocusKey)
	require.Equal(t, 4, got.FocusOffset)
	require.False(t, got.IsBackward)
}

func TestReconcile_BackwardWithExtend(t *testing.T) {
	c := content.New(
		content.NewBlock("B1", "hello world"),
		content.NewBlock("B2", "second line"),
	)
	root, leaves := renderTree(c)
	hostSel := host.NewSelection(root)

	st := selection.State{
		AnchorKey: "B2", AnchorOffset: 4,
		FocusKey: "B1", FocusOffset: 2,
		IsBackward: true,
	}
	Reconcile(hostSel, root, st, RunsFromTree(root))

	// The host holds a true backward range: anchor after focus.
	require.True(t, hostSel.IsBackward())
	require.Same(t, leaves["B2"], hostSel.AnchorNode())
	require.Equal(t, 4, hostSel.AnchorOffset())
	require.Same(t, leaves["B1"], hostSel.FocusNode())
	require.Equal(t, 2, hostSel.FocusOffset())

	got := ReadSelection(hostSel, c)
	require.NotNil(t, got)
	require.Equal(t, st, *got)
}

func TestReconcile_ForwardCrossNode(t *testing.T) {
	c := content.New(
		content.NewBlock("B1", "hello world"),
		content.NewBlock("B2", "second line"),
	)
	root, leaves := renderTree(c)
	hostSel := host.NewSelection(root)

	st := selection.CollapsedAt("B1", 6).WithFocus("B2", 6)
	Reconcile(hostSel, root, st, RunsFromTree(root))

	require.Same(t, leaves["B1"], hostSel.AnchorNode())
	require.Equal(t, 6, hostSel.AnchorOffset())
	require.Same(t, leaves["B2"], hostSel.FocusNode())
	require.Equal(t, 6, hostSel.FocusOffset())
	require.Equal(t, "worldsecond", hostSel.Text())
}

func TestReconcile_SplitRuns(t *testing.T) {
	b := content.NewBlock("B1", "hello world")
	c := content.New(b)
	root, first, second := renderSplitTree(b, 6)
	hostSel := host.NewSelection(root)

	st := selection.CollapsedAt("B1", 2).WithFocus("B1", 8)
	Reconcile(hostSel, root, st, RunsFromTree(root))

	require.Same(t, first, hostSel.AnchorNode())
	require.Equal(t, 2, hostSel.AnchorOffset())
	require.Same(t, second, hostSel.FocusNode())
	require.Equal(t, 2, hostSel.FocusOffset())

	got := ReadSelection(hostSel, c)
	require.NotNil(t, got)
	require.Equal(t, 2, got.AnchorOffset)
	require.Equal(t, 8, got.FocusOffset)
}

func TestApplySelection_StaleNodeSkipped(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	root, leaves := renderTree(c)
	hostSel := host.NewSelection(root)

	// Detach the block wrapper before applying, as a stale render would.
	leaves["B1"].Parent().Detach()

	st := selection.CollapsedAt("B1", 1).WithFocus("B1", 3)
	ApplySelection(hostSel, root, st, leaves["B1"], "B1", 0, 5)

	require.Equal(t, 0, hostSel.RangeCount())
}

func TestApplySelection_MalformedOffsetDoesNotPanic(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	root, leaves := renderTree(c)
	hostSel := host.NewSelection(root)

	// The caller claims the node spans more characters than it renders:
	// the focus lands beyond the node's content. The diagnostic fires and
	// the host fault is swallowed; nothing reaches the caller.
	st := selection.CollapsedAt("B1", 1).WithFocus("B1", 9)
	require.NotPanics(t, func() {
		ApplySelection(hostSel, root, st, leaves["B1"], "B1", 0, 9)
	})

	// The anchor landed; the focus grow failed and left the range
	// collapsed there.
	require.Equal(t, 1, hostSel.RangeCount())
	require.Equal(t, 1, hostSel.AnchorOffset())
}

func TestRunsFromTree_CumulativeSpans(t *testing.T) {
	b := content.NewBlock("B1", "hello world")
	root, first, second := renderSplitTree(b, 6)

	runs := RunsFromTree(root)
	require.Len(t, runs, 2)
	require.Equal(t, TextRun{Node: first, BlockKey: "B1", Start: 0, End: 6}, runs[0])
	require.Equal(t, TextRun{Node: second, BlockKey: "B1", Start: 6, End: 11}, runs[1])
}

func TestRunsFromTree_IgnoresUntaggedText(t *testing.T) {
	root := host.NewElement()
	root.AppendChild(host.NewText("decoration"))
	require.Empty(t, RunsFromTree(root))
}

func TestResolvePoint(t *testing.T) {
	c := content.New(
		content.NewBlock("B1", "hello world"),
		content.NewBlock("B2", "second line"),
	)
	_, leaves := renderTree(c)

	st := ResolvePoint(c, leaves["B2"], 4)
	require.NotNil(t, st)
	require.Equal(t, selection.CollapsedAt("B2", 4), *st)
	require.True(t, st.IsCollapsed())

	// Resolution from the tagged wrapper element lands at the block start.
	st = ResolvePoint(c, leaves["B1"].Parent(), 0)
	require.NotNil(t, st)
	require.Equal(t, selection.CollapsedAt("B1", 0), *st)
}

func TestResolvePoint_NilNode(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	require.Nil(t, ResolvePoint(c, nil, 0))
}

func TestResolvePoint_NoOffsetKey(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	root := host.NewElement()
	leaf := host.NewText("hello")
	root.AppendChild(leaf)
	require.Nil(t, ResolvePoint(c, leaf, 2))
}

func TestResolvePoint_UnknownBlock(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	root := host.NewElement()
	leaf := host.NewText("stale")
	wrapper := host.NewElement().SetAttr(OffsetKeyAttr, OffsetKey("gone"))
	wrapper.AppendChild(leaf)
	root.AppendChild(wrapper)
	require.Nil(t, ResolvePoint(c, leaf, 2))
}

func TestResolvePoint_ClampsOffset(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hi"))
	root, leaves := renderTree(c)
	_ = root

	st := ResolvePoint(c, leaves["B1"], 99)
	require.NotNil(t, st)
	require.Equal(t, 2, st.AnchorOffset)
}

func TestReadSelection_NoRange(t *testing.T) {
	c := content.New(content.NewBlock("B1", "hello"))
	root, _ := renderTree(c)
	require.Nil(t, ReadSelection(host.NewSelection(root), c))
}
