package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapsedAt(t *testing.T) {
	s := CollapsedAt("B1", 3)
	require.True(t, s.IsCollapsed())
	require.Equal(t, "B1", s.AnchorKey)
	require.Equal(t, 3, s.AnchorOffset)
	require.Equal(t, "B1", s.FocusKey)
	require.Equal(t, 3, s.FocusOffset)
	require.False(t, s.IsBackward)
}

func TestIsCollapsed_DifferentOffsets(t *testing.T) {
	s := CollapsedAt("B1", 3).WithFocus("B1", 5)
	require.False(t, s.IsCollapsed())
}

func TestIsCollapsed_DifferentBlocks(t *testing.T) {
	s := CollapsedAt("B1", 3).WithFocus("B2", 3)
	require.False(t, s.IsCollapsed())
}

func TestSwapped(t *testing.T) {
	s := State{
		AnchorKey:    "B2",
		AnchorOffset: 7,
		FocusKey:     "B1",
		FocusOffset:  2,
		IsBackward:   true,
	}

	sw := s.Swapped()
	require.Equal(t, "B1", sw.AnchorKey)
	require.Equal(t, 2, sw.AnchorOffset)
	require.Equal(t, "B2", sw.FocusKey)
	require.Equal(t, 7, sw.FocusOffset)
	require.False(t, sw.IsBackward)

	// Original is untouched.
	require.True(t, s.IsBackward)
	require.Equal(t, "B2", s.AnchorKey)
}

func TestStartEnd_Forward(t *testing.T) {
	s := CollapsedAt("B1", 2).WithFocus("B2", 5)
	require.Equal(t, "B1", s.StartKey())
	require.Equal(t, 2, s.StartOffset())
	require.Equal(t, "B2", s.EndKey())
	require.Equal(t, 5, s.EndOffset())
}

func TestStartEnd_Backward(t *testing.T) {
	s := State{
		AnchorKey:    "B2",
		AnchorOffset: 5,
		FocusKey:     "B1",
		FocusOffset:  2,
		IsBackward:   true,
	}
	require.Equal(t, "B1", s.StartKey())
	require.Equal(t, 2, s.StartOffset())
	require.Equal(t, "B2", s.EndKey())
	require.Equal(t, 5, s.EndOffset())
}

func TestString(t *testing.T) {
	require.Equal(t, "B1:3", CollapsedAt("B1", 3).String())
	require.Equal(t, "B1:3..B1:7", CollapsedAt("B1", 3).WithFocus("B1", 7).String())

	back := State{AnchorKey: "B1", AnchorOffset: 7, FocusKey: "B1", FocusOffset: 3, IsBackward: true}
	require.Equal(t, "B1:7..B1:3<", back.String())
}
