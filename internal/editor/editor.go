package editor

import (
	"context"

	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/pubsub"
)

// Mode is the editor's transient interaction mode.
type Mode string

const (
	// ModeEdit is the normal editing mode.
	ModeEdit Mode = "edit"
	// ModeDrag is active while a drag gesture is in progress over the
	// editor.
	ModeDrag Mode = "drag"
)

// HookResult is what an override hook returns to claim or decline an
// event.
type HookResult int

const (
	// NotHandled lets the editor perform its canonical behavior.
	NotHandled HookResult = iota
	// Handled stops the editor from acting on the event.
	Handled
)

// IsEventHandled reports whether a hook claimed the event.
func IsEventHandled(r HookResult) bool {
	return r == Handled
}

// StateEvent is published whenever the editor's state is replaced.
type StateEvent struct {
	State EditorState
}

// Editor owns the current EditorState for one editor instance. All state
// access happens on the host's event goroutine; the broker exists so UI
// listeners can observe replacements, not to synchronize mutation.
type Editor struct {
	state  EditorState
	mode   Mode
	broker *pubsub.Broker[StateEvent]
}

// New creates an editor holding the initial state.
func New(initial EditorState) *Editor {
	return &Editor{
		state:  initial,
		mode:   ModeEdit,
		broker: pubsub.NewBroker[StateEvent](),
	}
}

// State returns the current editor state.
func (e *Editor) State() EditorState {
	return e.state
}

// SetState atomically replaces the current state and notifies subscribers.
func (e *Editor) SetState(s EditorState) {
	e.state = s
	log.Debug(log.CatEditor, "state replaced",
		"change", s.ChangeType(),
		"selection", s.Selection(),
		"blocks", s.Content().Len(),
	)
	e.broker.Publish(pubsub.PushedEvent, StateEvent{State: s})
}

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// EnterDragMode marks a drag gesture in progress.
func (e *Editor) EnterDragMode() {
	e.mode = ModeDrag
}

// ExitDragMode unconditionally returns the editor to edit mode. Called
// whenever a drag terminates, whether or not a drop mutation occurred.
func (e *Editor) ExitDragMode() {
	e.mode = ModeEdit
}

// Subscribe returns a channel of state events, cleaned up when ctx is
// cancelled.
func (e *Editor) Subscribe(ctx context.Context) <-chan pubsub.Event[StateEvent] {
	return e.broker.Subscribe(ctx)
}

// Events exposes the broker for continuous Bubble Tea listeners.
func (e *Editor) Events() *pubsub.Broker[StateEvent] {
	return e.broker
}

// Close shuts down the event broker.
func (e *Editor) Close() {
	e.broker.Close()
}
