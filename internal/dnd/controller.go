package dnd

import "github.com/appcues/inkwell/internal/log"

// Origin classifies where a drag's payload came from.
type Origin string

const (
	// OriginInternal means the payload is the editor's own selected text.
	OriginInternal Origin = "internal"
	// OriginExternal means the payload came from outside the editor.
	OriginExternal Origin = "external"
)

// Controller is the drag lifecycle state machine: idle, or dragging with
// an origin. Transitions are driven by the host's drag events; End is
// called on every termination path, drop or not.
type Controller struct {
	dragging bool
	origin   Origin
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{origin: OriginExternal}
}

// Begin enters the dragging state. Beginning while already dragging
// replaces the origin; overlapping gestures resolve to the newest one.
func (c *Controller) Begin(origin Origin) {
	log.Debug(log.CatDnd, "drag begin", "origin", origin, "wasDragging", c.dragging)
	c.dragging = true
	c.origin = origin
}

// End returns to idle unconditionally. Safe to call when already idle.
func (c *Controller) End() {
	if c.dragging {
		log.Debug(log.CatDnd, "drag end", "origin", c.origin)
	}
	c.dragging = false
	c.origin = OriginExternal
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Origin returns the current drag's origin. Outside a drag it is
// OriginExternal.
func (c *Controller) Origin() Origin { return c.origin }
