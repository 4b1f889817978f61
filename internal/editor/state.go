// Package editor owns the immutable editor snapshot and the editor
// instance that holds the current one. All content changes flow through
// Push, which records the prior state for undo; nothing in this module
// mutates content in place.
package editor

import (
	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/selection"
)

// ChangeType tags a pushed state so history logic can group or label the
// mutation that produced it.
type ChangeType string

const (
	ChangeInsertCharacters ChangeType = "insert-characters"
	ChangeInsertFragment   ChangeType = "insert-fragment"
	ChangeRemoveRange      ChangeType = "remove-range"
	ChangeUndo             ChangeType = "undo"
	ChangeRedo             ChangeType = "redo"
)

// maxHistory bounds the undo stack.
const maxHistory = 128

type historyEntry struct {
	content content.Content
	sel     selection.State
}

// EditorState is an immutable snapshot: the content model, the current
// logical selection, the active inline style set, and the change type that
// produced it. New snapshots come from Push or the With* helpers.
type EditorState struct {
	content     content.Content
	sel         selection.State
	inlineStyle content.StyleSet
	changeType  ChangeType

	undo []historyEntry
	redo []historyEntry
}

// NewEditorState creates an initial state with empty history.
func NewEditorState(c content.Content, sel selection.State) EditorState {
	return EditorState{content: c, sel: sel}
}

// Content returns the state's content model.
func (s EditorState) Content() content.Content { return s.content }

// Selection returns the state's logical selection.
func (s EditorState) Selection() selection.State { return s.sel }

// InlineStyle returns the active inline style set.
func (s EditorState) InlineStyle() content.StyleSet { return s.inlineStyle }

// ChangeType returns the tag of the mutation that produced this state.
func (s EditorState) ChangeType() ChangeType { return s.changeType }

// UndoDepth returns the number of recorded undo steps.
func (s EditorState) UndoDepth() int { return len(s.undo) }

// WithSelection returns a copy with the selection replaced. This is not a
// history entry; selection moves are not undoable on their own.
func (s EditorState) WithSelection(sel selection.State) EditorState {
	s.sel = sel
	return s
}

// WithInlineStyle returns a copy with the active inline style replaced.
func (s EditorState) WithInlineStyle(style content.StyleSet) EditorState {
	s.inlineStyle = style
	return s
}

// Push returns a new state holding next, recording prev for undo and
// clearing the redo stack. Every content mutation goes through here:
// one push, one undo step.
func Push(prev EditorState, next content.Content, ct ChangeType) EditorState {
	undo := make([]historyEntry, len(prev.undo), len(prev.undo)+1)
	copy(undo, prev.undo)
	undo = append(undo, historyEntry{content: prev.content, sel: prev.sel})
	if len(undo) > maxHistory {
		undo = undo[len(undo)-maxHistory:]
	}

	return EditorState{
		content:     next,
		sel:         prev.sel,
		inlineStyle: prev.inlineStyle,
		changeType:  ct,
		undo:        undo,
	}
}

// Undo returns the previous recorded state, or s unchanged when there is
// nothing to undo.
func Undo(s EditorState) EditorState {
	if len(s.undo) == 0 {
		return s
	}
	entry := s.undo[len(s.undo)-1]

	redo := make([]historyEntry, len(s.redo), len(s.redo)+1)
	copy(redo, s.redo)
	redo = append(redo, historyEntry{content: s.content, sel: s.sel})

	return EditorState{
		content:     entry.content,
		sel:         entry.sel,
		inlineStyle: s.inlineStyle,
		changeType:  ChangeUndo,
		undo:        s.undo[:len(s.undo)-1],
		redo:        redo,
	}
}

// Redo reapplies the most recently undone state, or returns s unchanged.
func Redo(s EditorState) EditorState {
	if len(s.redo) == 0 {
		return s
	}
	entry := s.redo[len(s.redo)-1]

	undo := make([]historyEntry, len(s.undo), len(s.undo)+1)
	copy(undo, s.undo)
	undo = append(undo, historyEntry{content: s.content, sel: s.sel})

	return EditorState{
		content:     entry.content,
		sel:         entry.sel,
		inlineStyle: s.inlineStyle,
		changeType:  ChangeRedo,
		undo:        undo,
		redo:        s.redo[:len(s.redo)-1],
	}
}
