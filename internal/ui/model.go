// Package ui is the interactive playground: a bubbletea program that
// renders the document, maps mouse gestures onto the logical selection,
// and drives drag/drop through the same handler the editor embeds.
package ui

import (
	"context"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/appcues/inkwell/internal/config"
	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/dnd"
	"github.com/appcues/inkwell/internal/editor"
	"github.com/appcues/inkwell/internal/host"
	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/pubsub"
	"github.com/appcues/inkwell/internal/reconcile"
	"github.com/appcues/inkwell/internal/selection"
)

// maxLogLines bounds the in-app log tail.
const maxLogLines = 8

// configChangedMsg signals that the config file changed on disk.
type configChangedMsg struct{}

// Options configures the playground model.
type Options struct {
	Config     config.Config
	ConfigPath string
	Editor     *editor.Editor
	Handler    *dnd.Handler

	// Reload re-reads the config from disk; nil disables hot reload.
	Reload func() (config.Config, error)
	// Watch delivers debounced config-change signals; nil disables.
	Watch <-chan struct{}
}

// Model is the playground's bubbletea model.
type Model struct {
	ctx        context.Context
	cfg        config.Config
	configPath string
	theme      Theme
	keys       keyMap

	ed      *editor.Editor
	handler *dnd.Handler

	// Host render tree, rebuilt after every state change.
	root    *host.Node
	leaves  map[string]*host.Node
	hostSel *host.Selection

	states *pubsub.ContinuousListener[editor.StateEvent]
	logs   *log.LogListener
	reload func() (config.Config, error)
	watch  <-chan struct{}

	width, height int

	// Mouse gesture state.
	selecting bool
	dragging  bool
	dropPoint *selection.State
	dropLeaf  *host.Node
	dropOff   int

	showLog  bool
	logLines []string
}

// New creates the playground model.
func New(ctx context.Context, opts Options) Model {
	m := Model{
		ctx:        ctx,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		theme:      NewTheme(opts.Config.Theme),
		keys:       defaultKeyMap(),
		ed:         opts.Editor,
		handler:    opts.Handler,
		states:     pubsub.NewContinuousListener(ctx, opts.Editor.Events()),
		logs:       log.NewListener(ctx),
		reload:     opts.Reload,
		watch:      opts.Watch,
		showLog:    opts.Config.UI.ShowLog,
	}
	return m.syncHost()
}

// Init starts the event listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.states.Listen()}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	if cmd := m.watchCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case pubsub.Event[editor.StateEvent]:
		// State replaced, possibly by async file-text extraction.
		m = m.syncHost()
		return m, m.states.Listen()

	case pubsub.Event[string]:
		m.logLines = append(m.logLines, msg.Payload)
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		if m.logs != nil {
			return m, m.logs.Listen()
		}
		return m, nil

	case configChangedMsg:
		m = m.applyConfigReload()
		return m, m.watchCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) watchCmd() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return configChangedMsg{}
		}
	}
}

// applyConfigReload re-reads config and re-themes without touching the
// document.
func (m Model) applyConfigReload() Model {
	if m.reload == nil {
		return m
	}
	cfg, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err)
		return m
	}
	log.Info(log.CatConfig, "config reloaded", "preset", cfg.Theme.Preset)
	m.cfg = cfg
	m.theme = NewTheme(cfg.Theme)
	m.showLog = cfg.UI.ShowLog
	return m.syncHost()
}

// syncHost rebuilds the host render tree from the current content and
// reconciles the native selection against the logical one, exactly as a
// render pass would.
func (m Model) syncHost() Model {
	st := m.ed.State()
	root := host.NewElement()
	leaves := make(map[string]*host.Node)
	for _, b := range st.Content().Blocks() {
		leaf := host.NewText(b.Text())
		wrapper := host.NewElement().SetAttr(reconcile.OffsetKeyAttr, reconcile.OffsetKey(b.Key()))
		wrapper.AppendChild(leaf)
		root.AppendChild(wrapper)
		leaves[b.Key()] = leaf
	}

	var hostOpts []host.Option
	if !m.cfg.Host.Extend {
		hostOpts = append(hostOpts, host.WithoutExtend())
	}
	hostSel := host.NewSelection(root, hostOpts...)
	reconcile.Reconcile(hostSel, root, st.Selection(), reconcile.RunsFromTree(root))

	m.root, m.leaves, m.hostSel = root, leaves, hostSel
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Undo):
		m.ed.SetState(editor.Undo(m.ed.State()))
		return m.syncHost(), nil

	case key.Matches(msg, m.keys.Redo):
		m.ed.SetState(editor.Redo(m.ed.State()))
		return m.syncHost(), nil

	case key.Matches(msg, m.keys.Bold):
		st := m.ed.State()
		m.ed.SetState(st.WithInlineStyle(st.InlineStyle().Toggle(content.StyleBold)))
		return m, nil

	case key.Matches(msg, m.keys.DropText):
		return m.simulateTextDrop(), nil

	case key.Matches(msg, m.keys.DropFiles):
		return m.simulateFileDrop(), nil

	case key.Matches(msg, m.keys.ToggleLog):
		m.showLog = !m.showLog
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme(), nil

	case key.Matches(msg, m.keys.Backspace):
		return m.backspace(), nil
	}

	switch msg.Type {
	case tea.KeySpace:
		return m.insert(" "), nil
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		return m.insert(string(msg.Runes)), nil
	}
	return m, nil
}

// insert types text at the current selection.
func (m Model) insert(text string) Model {
	st := m.ed.State()
	sel := st.Selection()
	next, err := st.Content().InsertText(sel, text, st.InlineStyle())
	if err != nil {
		log.ErrorErr(log.CatUI, "insert failed", err, "selection", sel)
		return m
	}
	after := selection.CollapsedAt(sel.StartKey(), sel.StartOffset()+utf8.RuneCountInString(text))
	m.ed.SetState(editor.Push(st, next, editor.ChangeInsertCharacters).WithSelection(after))
	return m.syncHost()
}

// backspace removes the selection, or the grapheme cluster before a
// collapsed caret. A caret at a block start is a no-op; block merging is
// not a playground gesture.
func (m Model) backspace() Model {
	st := m.ed.State()
	sel := st.Selection()
	if sel.IsCollapsed() {
		if sel.AnchorOffset == 0 {
			return m
		}
		b, ok := st.Content().Block(sel.AnchorKey)
		if !ok {
			return m
		}
		prev := PrevCluster(b.Text(), sel.AnchorOffset)
		sel = selection.CollapsedAt(sel.AnchorKey, prev).WithFocus(sel.AnchorKey, sel.AnchorOffset)
	}
	next, err := st.Content().RemoveRange(sel)
	if err != nil {
		log.ErrorErr(log.CatUI, "remove failed", err, "selection", sel)
		return m
	}
	after := selection.CollapsedAt(sel.StartKey(), sel.StartOffset())
	m.ed.SetState(editor.Push(st, next, editor.ChangeRemoveRange).WithSelection(after))
	return m.syncHost()
}

// simulateTextDrop plays an external drag dropping text at the caret.
func (m Model) simulateTextDrop() Model {
	leaf, off, ok := m.caretTarget()
	if !ok {
		return m
	}
	m.handler.OnDragStart(dnd.OriginExternal)
	ev := &dnd.Event{Target: leaf, TargetOffset: off, Data: dnd.DataTransfer{Text: "[dropped text]"}}
	m.handler.OnDrop(m.ctx, ev)
	return m.syncHost()
}

// simulateFileDrop plays a file drop at the caret: one text file that
// extraction accepts and one binary blob it skips.
func (m Model) simulateFileDrop() Model {
	leaf, off, ok := m.caretTarget()
	if !ok {
		return m
	}
	m.handler.OnDragStart(dnd.OriginExternal)
	ev := &dnd.Event{Target: leaf, TargetOffset: off, Data: dnd.DataTransfer{
		Files: []dnd.File{
			{Name: "notes.txt", Data: []byte("[contents of notes.txt]")},
			{Name: "image.png", Data: []byte{0x89, 0x50, 0x4E, 0x47}},
		},
	}}
	m.handler.OnDrop(m.ctx, ev)
	return m.syncHost()
}

// caretTarget maps the current caret to a host node and node-relative
// offset.
func (m Model) caretTarget() (*host.Node, int, bool) {
	sel := m.ed.State().Selection()
	leaf, ok := m.leaves[sel.StartKey()]
	if !ok {
		return nil, 0, false
	}
	return leaf, sel.StartOffset(), true
}

func (m Model) cycleTheme() Model {
	current := m.cfg.Theme.Preset
	if current == "" {
		current = "default"
	}
	next := config.ThemePresets[0]
	for i, p := range config.ThemePresets {
		if p == current {
			next = config.ThemePresets[(i+1)%len(config.ThemePresets)]
			break
		}
	}
	m.cfg.Theme.Preset = next
	m.theme = NewTheme(m.cfg.Theme)
	if m.configPath != "" {
		if err := config.SaveTheme(m.configPath, m.cfg.Theme); err != nil {
			log.ErrorErr(log.CatConfig, "persisting theme failed", err, "preset", next)
		}
	}
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		key, leaf, off, ok := m.findPoint(msg)
		if !ok {
			return m
		}
		st := m.ed.State()
		if !st.Selection().IsCollapsed() && m.pointInSelection(st, key, off) {
			// Grabbing selected text starts an internal drag.
			m.dragging = true
			m.handler.OnDragStart(dnd.OriginInternal)
			point := selection.CollapsedAt(key, off)
			m.dropPoint, m.dropLeaf, m.dropOff = &point, leaf, off
			return m
		}
		m.selecting = true
		m.ed.SetState(st.WithSelection(selection.CollapsedAt(key, off)))
		return m.syncHost()

	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		key, leaf, off, ok := m.findPoint(msg)
		if !ok {
			return m
		}
		if m.dragging {
			point := selection.CollapsedAt(key, off)
			m.dropPoint, m.dropLeaf, m.dropOff = &point, leaf, off
			return m
		}
		if m.selecting {
			st := m.ed.State()
			sel := st.Selection().WithFocus(key, off)
			sel.IsBackward = st.Content().ComparePoints(
				sel.FocusKey, sel.FocusOffset, sel.AnchorKey, sel.AnchorOffset) < 0
			m.ed.SetState(st.WithSelection(sel))
			return m.syncHost()
		}
		return m

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		if m.dragging {
			ev := &dnd.Event{Target: m.dropLeaf, TargetOffset: m.dropOff}
			if _, leaf, off, ok := m.findPoint(msg); ok {
				ev.Target, ev.TargetOffset = leaf, off
			}
			m.handler.OnDrop(m.ctx, ev)
			m.dragging = false
			m.dropPoint, m.dropLeaf = nil, nil
			return m.syncHost()
		}
		m.selecting = false
		return m
	}
	return m
}

// findPoint maps a mouse position to the block, host leaf, and rune
// offset under it via the rendered zones.
func (m Model) findPoint(msg tea.MouseMsg) (string, *host.Node, int, bool) {
	c := m.ed.State().Content()
	for _, b := range c.Blocks() {
		z := zone.Get(reconcile.OffsetKey(b.Key()))
		if z == nil || !z.InBounds(msg) {
			continue
		}
		x, _ := z.Pos(msg)
		return b.Key(), m.leaves[b.Key()], ColToRune(b.Text(), x), true
	}
	return "", nil, 0, false
}

// pointInSelection reports whether the point lies within the selection's
// document-order span, edges included.
func (m Model) pointInSelection(st editor.EditorState, key string, off int) bool {
	c := st.Content()
	sel := st.Selection()
	return c.ComparePoints(sel.StartKey(), sel.StartOffset(), key, off) <= 0 &&
		c.ComparePoints(key, off, sel.EndKey(), sel.EndOffset()) <= 0
}
