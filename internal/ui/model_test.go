package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/appcues/inkwell/internal/config"
	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/dnd"
	"github.com/appcues/inkwell/internal/editor"
	"github.com/appcues/inkwell/internal/pubsub"
	"github.com/appcues/inkwell/internal/selection"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	code := m.Run()
	zone.Close()
	os.Exit(code)
}

type fixture struct {
	model   Model
	ed      *editor.Editor
	handler *dnd.Handler
}

func newFixture(t *testing.T, lines ...string) *fixture {
	t.Helper()
	if len(lines) == 0 {
		lines = []string{"hello", "world"}
	}

	blocks := make([]content.Block, len(lines))
	for i, l := range lines {
		blocks[i] = content.NewBlock(blockKey(i), l)
	}
	c := content.New(blocks...)

	ed := editor.New(editor.NewEditorState(c, selection.CollapsedAt("B1", 0)))
	t.Cleanup(ed.Close)
	handler := dnd.NewHandler(ed)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := New(ctx, Options{
		Config:  config.Defaults(),
		Editor:  ed,
		Handler: handler,
	})
	return &fixture{model: m, ed: ed, handler: handler}
}

func blockKey(i int) string {
	return fmt.Sprintf("B%d", i+1)
}

func (f *fixture) update(t *testing.T, msg tea.Msg) {
	t.Helper()
	next, _ := f.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m
}

func (f *fixture) setCaret(key string, off int) {
	f.ed.SetState(f.ed.State().WithSelection(selection.CollapsedAt(key, off)))
	f.model = f.model.syncHost()
}

func (f *fixture) setRange(sel selection.State) {
	f.ed.SetState(f.ed.State().WithSelection(sel))
	f.model = f.model.syncHost()
}

func TestUpdate_TypedRunesInsertAtCaret(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 2)

	f.update(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("XY")})

	st := f.ed.State()
	require.Equal(t, "heXYllo\nworld", st.Content().PlainText("\n"))
	require.Equal(t, selection.CollapsedAt("B1", 4), st.Selection())
	require.Equal(t, 1, st.UndoDepth())
}

func TestUpdate_SpaceInserts(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 5)

	f.update(t, tea.KeyMsg{Type: tea.KeySpace})

	require.Equal(t, "hello \nworld", f.ed.State().Content().PlainText("\n"))
}

func TestUpdate_BackspaceDeletesWholeCluster(t *testing.T) {
	f := newFixture(t, "ae\u0301x")
	f.setCaret("B1", 3) // between the combining sequence and "x"

	f.update(t, tea.KeyMsg{Type: tea.KeyBackspace})

	st := f.ed.State()
	require.Equal(t, "ax", st.Content().PlainText("\n"))
	require.Equal(t, selection.CollapsedAt("B1", 1), st.Selection())
}

func TestUpdate_BackspaceAtBlockStartIsNoop(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B2", 0)

	f.update(t, tea.KeyMsg{Type: tea.KeyBackspace})

	st := f.ed.State()
	require.Equal(t, "hello\nworld", st.Content().PlainText("\n"))
	require.Equal(t, 0, st.UndoDepth())
}

func TestUpdate_BackspaceRemovesSelection(t *testing.T) {
	f := newFixture(t)
	f.setRange(selection.CollapsedAt("B1", 1).WithFocus("B1", 4))

	f.update(t, tea.KeyMsg{Type: tea.KeyBackspace})

	st := f.ed.State()
	require.Equal(t, "ho\nworld", st.Content().PlainText("\n"))
	require.Equal(t, selection.CollapsedAt("B1", 1), st.Selection())
}

func TestUpdate_UndoRedoKeys(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 0)
	f.update(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Z")})
	require.Equal(t, "Zhello\nworld", f.ed.State().Content().PlainText("\n"))

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "hello\nworld", f.ed.State().Content().PlainText("\n"))

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "Zhello\nworld", f.ed.State().Content().PlainText("\n"))
}

func TestUpdate_BoldToggleStylesTypedText(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 0)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.True(t, f.ed.State().InlineStyle().Has(content.StyleBold))

	f.update(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("B")})
	b, ok := f.ed.State().Content().Block("B1")
	require.True(t, ok)
	require.True(t, b.StyleAt(0).Has(content.StyleBold))
	require.False(t, b.StyleAt(1).Has(content.StyleBold))

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.False(t, f.ed.State().InlineStyle().Has(content.StyleBold))
}

func TestUpdate_SimulatedTextDrop(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 2)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlT})

	st := f.ed.State()
	require.Equal(t, "he[dropped text]llo\nworld", st.Content().PlainText("\n"))
	require.Equal(t, editor.ModeEdit, f.ed.Mode())
	require.Equal(t, 1, st.UndoDepth())
}

func TestUpdate_SimulatedFileDropSkipsBinary(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B2", 5)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlF})

	st := f.ed.State()
	require.Equal(t, "hello\nworld[contents of notes.txt]", st.Content().PlainText("\n"))
}

func TestUpdate_ToggleLogPane(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.model.showLog)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, f.model.showLog)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.False(t, f.model.showLog)
}

func TestUpdate_CycleThemePersists(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	f.model.configPath = path

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, "dracula", f.model.cfg.Theme.Preset)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out struct {
		Theme config.ThemeConfig `yaml:"theme"`
	}
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Equal(t, "dracula", out.Theme.Preset)

	f.update(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, "nord", f.model.cfg.Theme.Preset)
}

func TestUpdate_StateEventResyncsHost(t *testing.T) {
	f := newFixture(t)
	st := f.ed.State()
	next, err := st.Content().InsertText(selection.CollapsedAt("B2", 0), "!", content.StyleSet{})
	require.NoError(t, err)
	f.ed.SetState(editor.Push(st, next, editor.ChangeInsertCharacters))

	f.update(t, pubsub.Event[editor.StateEvent]{
		Type:    pubsub.PushedEvent,
		Payload: editor.StateEvent{State: f.ed.State()},
	})

	require.Equal(t, "!world", f.model.leaves["B2"].Text())
}

func TestUpdate_ConfigReloadAppliesTheme(t *testing.T) {
	f := newFixture(t)
	f.model.reload = func() (config.Config, error) {
		cfg := config.Defaults()
		cfg.Theme.Preset = "nord"
		cfg.UI.ShowLog = true
		return cfg, nil
	}

	f.update(t, configChangedMsg{})

	require.Equal(t, "nord", f.model.cfg.Theme.Preset)
	require.True(t, f.model.showLog)
}

func TestUpdate_ConfigReloadErrorKeepsCurrent(t *testing.T) {
	f := newFixture(t)
	f.model.reload = func() (config.Config, error) {
		return config.Config{}, os.ErrNotExist
	}
	before := f.model.cfg

	f.update(t, configChangedMsg{})

	require.Equal(t, before, f.model.cfg)
}

func TestView_RendersDocumentAndStatus(t *testing.T) {
	f := newFixture(t)
	f.setCaret("B1", 0)

	out := f.model.View()
	require.Contains(t, out, "hello")
	require.Contains(t, out, "world")
	require.Contains(t, out, "B1")
	require.Contains(t, out, "undo:0")
}

func TestView_ShowsDropCaretWhileDragging(t *testing.T) {
	f := newFixture(t)
	f.model.dragging = true
	point := selection.CollapsedAt("B2", 3)
	f.model.dropPoint = &point

	out := f.model.View()
	require.Contains(t, out, dropCaretGlyph)
}

func TestView_NoDropCaretWhenIdle(t *testing.T) {
	f := newFixture(t)
	out := f.model.View()
	require.NotContains(t, out, dropCaretGlyph)
}

func TestBlockSpan_CrossBlockSelection(t *testing.T) {
	f := newFixture(t)
	c := f.ed.State().Content()
	sel := selection.CollapsedAt("B1", 3).WithFocus("B2", 2)

	blocks := c.Blocks()
	s0, e0 := blockSpan(c, &sel, 0, blocks[0])
	require.Equal(t, 3, s0)
	require.Equal(t, 5, e0)

	s1, e1 := blockSpan(c, &sel, 1, blocks[1])
	require.Equal(t, 0, s1)
	require.Equal(t, 2, e1)
}

func TestBlockSpan_CollapsedIsEmpty(t *testing.T) {
	f := newFixture(t)
	c := f.ed.State().Content()
	sel := selection.CollapsedAt("B1", 3)

	s, e := blockSpan(c, &sel, 0, c.BlockAt(0))
	require.Equal(t, -1, s)
	require.Equal(t, -1, e)
}
