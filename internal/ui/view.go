package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/editor"
	"github.com/appcues/inkwell/internal/reconcile"
	"github.com/appcues/inkwell/internal/selection"
)

// dropCaretGlyph marks the insertion point while a drag hovers.
const dropCaretGlyph = "▎"

// View renders the document with the selection read back from the host,
// not from the logical state directly. What the user sees is what the
// reconciler actually produced.
func (m Model) View() string {
	st := m.ed.State()
	c := st.Content()
	read := reconcile.ReadSelection(m.hostSel, c)

	var rows []string
	for i, b := range c.Blocks() {
		selStart, selEnd := blockSpan(c, read, i, b)
		caretOff := -1
		if read != nil && read.IsCollapsed() && read.AnchorKey == b.Key() {
			caretOff = read.AnchorOffset
		}
		dropOff := -1
		if m.dragging && m.dropPoint != nil && m.dropPoint.AnchorKey == b.Key() {
			dropOff = m.dropPoint.AnchorOffset
		}

		line := m.renderBlock(b, selStart, selEnd, caretOff, dropOff)
		gutter := m.theme.BlockKey.Render(b.Key() + " ")
		rows = append(rows, gutter+zone.Mark(reconcile.OffsetKey(b.Key()), line))
	}

	if m.cfg.UI.ShowStatusBar {
		rows = append(rows, "", m.statusBar(st, read))
	}
	if m.showLog {
		for _, l := range m.logLines {
			rows = append(rows, m.theme.LogLine.Render(strings.TrimRight(l, "\n")))
		}
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// blockSpan returns the selected rune span [start, end) within block i,
// or (-1, -1) when the selection does not touch it.
func blockSpan(c content.Content, read *selection.State, i int, b content.Block) (int, int) {
	if read == nil || read.IsCollapsed() {
		return -1, -1
	}
	startIdx := c.BlockIndex(read.StartKey())
	endIdx := c.BlockIndex(read.EndKey())
	if startIdx < 0 || endIdx < 0 || i < startIdx || i > endIdx {
		return -1, -1
	}
	start, end := 0, b.Len()
	if i == startIdx {
		start = read.StartOffset()
	}
	if i == endIdx {
		end = read.EndOffset()
	}
	return start, end
}

// renderBlock styles one block cluster by cluster so wide characters and
// combining marks never get split by a style boundary.
func (m Model) renderBlock(b content.Block, selStart, selEnd, caretOff, dropOff int) string {
	var out strings.Builder
	s := b.Text()
	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == dropOff {
			out.WriteString(m.theme.DropCaret.Render(dropCaretGlyph))
		}

		style := m.theme.Text
		if selStart >= 0 && i >= selStart && i < selEnd {
			style = m.theme.Selection
		}
		if b.StyleAt(i).Has(content.StyleBold) {
			style = style.Bold(true)
		}
		if i == caretOff {
			style = m.theme.Caret
		}
		out.WriteString(style.Render(cluster))

		i += len([]rune(cluster))
		s = rest
		state = newState
	}

	if dropOff == b.Len() {
		out.WriteString(m.theme.DropCaret.Render(dropCaretGlyph))
	}
	if caretOff == b.Len() {
		out.WriteString(m.theme.Caret.Render(" "))
	}
	return out.String()
}

func (m Model) statusBar(st editor.EditorState, read *selection.State) string {
	mode := string(m.ed.Mode())
	if m.dragging {
		mode = "drag"
	}

	sel := "none"
	if read != nil {
		sel = read.String()
	}

	styles := "plain"
	if st.InlineStyle().Len() > 0 {
		styles = strings.Join(st.InlineStyle().Names(), ",")
	}

	left := fmt.Sprintf("[%s] sel:%s undo:%d style:%s theme:%s",
		mode, sel, st.UndoDepth(), styles, m.cfg.Theme.Preset)
	hints := "ctrl+t drop text | ctrl+f drop files | ctrl+z undo | ctrl+p theme | ctrl+c quit"
	return m.theme.StatusBar.Render(left + "  " + hints)
}
