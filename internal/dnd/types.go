// Package dnd implements the drag-and-drop surface: the drag lifecycle
// state machine, payload classification, and the drop-to-mutation path.
package dnd

import "github.com/appcues/inkwell/internal/host"

// File is a named payload carried by a drop.
type File struct {
	Name string
	Data []byte
}

// DataTransfer is the payload of a drag gesture. A drop carries files,
// text, or nothing useful at all.
type DataTransfer struct {
	Files []File
	Text  string
}

// HasFiles reports whether the transfer carries at least one file.
func (d DataTransfer) HasFiles() bool { return len(d.Files) > 0 }

// Event is one drop occurrence: the payload plus the host point under the
// cursor, with a latch recording that default host handling was
// suppressed.
type Event struct {
	Target       *host.Node
	TargetOffset int
	Data         DataTransfer

	defaultPrevented bool
}

// PreventDefault suppresses the host's own handling of the drop.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }
