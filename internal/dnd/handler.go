package dnd

import (
	"context"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/appcues/inkwell/internal/content"
	"github.com/appcues/inkwell/internal/editor"
	"github.com/appcues/inkwell/internal/log"
	"github.com/appcues/inkwell/internal/reconcile"
	"github.com/appcues/inkwell/internal/selection"
)

// Hooks lets an embedder intercept drops before the canonical behavior
// runs. A hook returning Handled stops the editor's own mutation. Nil
// hooks are skipped.
type Hooks struct {
	// HandleDroppedFiles fires when a drop carries files, before any text
	// extraction starts.
	HandleDroppedFiles func(drop selection.State, files []File) editor.HookResult

	// HandleDrop fires for non-file drops, with the payload and the drag's
	// origin classification.
	HandleDrop func(drop selection.State, data DataTransfer, origin Origin) editor.HookResult
}

// Handler connects drag events to the editor. It owns the lifecycle
// controller and routes drops to the right mutation.
type Handler struct {
	ed        *editor.Editor
	ctrl      *Controller
	extractor Extractor
	hooks     Hooks
	tracer    trace.Tracer
}

// Option configures a Handler.
type Option func(*Handler)

// WithExtractor replaces the file-text extractor.
func WithExtractor(x Extractor) Option {
	return func(h *Handler) { h.extractor = x }
}

// WithHooks installs override hooks.
func WithHooks(hooks Hooks) Option {
	return func(h *Handler) { h.hooks = hooks }
}

// WithTracer replaces the tracer used for drop spans.
func WithTracer(t trace.Tracer) Option {
	return func(h *Handler) { h.tracer = t }
}

// NewHandler creates a drop handler bound to the editor.
func NewHandler(ed *editor.Editor, opts ...Option) *Handler {
	h := &Handler{
		ed:        ed,
		ctrl:      NewController(),
		extractor: BlobExtractor{},
		tracer:    otel.Tracer("inkwell/dnd"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Controller exposes the drag lifecycle state machine.
func (h *Handler) Controller() *Controller { return h.ctrl }

// OnDragStart records a drag entering the editor and flips the editor
// into drag mode.
func (h *Handler) OnDragStart(origin Origin) {
	h.ctrl.Begin(origin)
	h.ed.EnterDragMode()
}

// OnDragEnd terminates a drag that ended without a drop over the editor.
func (h *Handler) OnDragEnd() {
	h.ctrl.End()
	h.ed.ExitDragMode()
}

// OnDrop handles a drop over the editor. The host's default handling is
// always suppressed and drag mode always exits, even when the drop point
// cannot be resolved or the payload is empty. At most one state push
// results from one drop. The lifecycle controller resets last, after the
// origin classification has been consumed.
func (h *Handler) OnDrop(ctx context.Context, ev *Event) {
	_, span := h.tracer.Start(ctx, "dnd.drop", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	defer h.ctrl.End()

	state := h.ed.State()
	drop := reconcile.ResolvePoint(state.Content(), ev.Target, ev.TargetOffset)

	ev.PreventDefault()
	origin := h.ctrl.Origin()
	internal := h.ctrl.Dragging() && origin == OriginInternal
	h.ed.ExitDragMode()

	if drop == nil {
		span.SetAttributes(attribute.String("drop.kind", "unresolved"))
		log.Debug(log.CatDnd, "drop point unresolved, ignoring")
		return
	}

	if ev.Data.HasFiles() {
		span.SetAttributes(
			attribute.String("drop.kind", "files"),
			attribute.Int("drop.files", len(ev.Data.Files)),
		)
		h.dropFiles(state, *drop, ev.Data.Files)
		return
	}

	span.SetAttributes(attribute.String("drop.kind", string(origin)))

	if h.hooks.HandleDrop != nil &&
		editor.IsEventHandled(h.hooks.HandleDrop(*drop, ev.Data, origin)) {
		log.Debug(log.CatDnd, "drop claimed by hook", "origin", origin)
		return
	}

	if internal {
		h.moveSelected(state, *drop)
		return
	}
	if ev.Data.Text != "" {
		h.insertAt(state, *drop, ev.Data.Text)
	}
}

// dropFiles runs the file path: the hook first, then asynchronous text
// extraction applied against the state captured at drop time. A state
// pushed between drop and extraction completion is overwritten; the drop
// happened first.
func (h *Handler) dropFiles(state editor.EditorState, drop selection.State, files []File) {
	if h.hooks.HandleDroppedFiles != nil &&
		editor.IsEventHandled(h.hooks.HandleDroppedFiles(drop, files)) {
		log.Debug(log.CatDnd, "file drop claimed by hook", "files", len(files))
		return
	}
	h.extractor.Extract(files, func(text string) {
		if text == "" {
			log.Debug(log.CatDnd, "file drop produced no text", "files", len(files))
			return
		}
		h.insertAt(state, drop, text)
	})
}

// moveSelected moves the editor's current selection to the drop point as
// a single undo step.
func (h *Handler) moveSelected(state editor.EditorState, drop selection.State) {
	source := state.Selection()
	c := state.Content()
	if source.IsCollapsed() {
		log.Debug(log.CatDnd, "internal drop with collapsed selection, ignoring")
		return
	}
	if c.ComparePoints(source.StartKey(), source.StartOffset(), drop.StartKey(), drop.StartOffset()) <= 0 &&
		c.ComparePoints(drop.StartKey(), drop.StartOffset(), source.EndKey(), source.EndOffset()) <= 0 {
		log.Debug(log.CatDnd, "drop inside dragged span, ignoring")
		return
	}

	next, err := c.MoveText(source, drop)
	if err != nil {
		log.ErrorErr(log.CatDnd, "move failed", err, "source", source, "drop", drop)
		return
	}

	moved, err := c.TextInRange(source)
	if err != nil {
		log.ErrorErr(log.CatDnd, "move failed", err, "source", source)
		return
	}
	adj := content.AdjustTargetForRemoval(c, source, drop)
	after := selection.CollapsedAt(adj.StartKey(), adj.StartOffset()+utf8.RuneCountInString(moved))
	h.ed.SetState(editor.Push(state, next, editor.ChangeInsertFragment).WithSelection(after))
}

// insertAt inserts text at the drop point, leaving the caret after it.
func (h *Handler) insertAt(state editor.EditorState, drop selection.State, text string) {
	next, err := state.Content().InsertText(drop, text, state.InlineStyle())
	if err != nil {
		log.ErrorErr(log.CatDnd, "insert failed", err, "drop", drop)
		return
	}
	after := selection.CollapsedAt(drop.StartKey(), drop.StartOffset()+utf8.RuneCountInString(text))
	h.ed.SetState(editor.Push(state, next, editor.ChangeInsertFragment).WithSelection(after))
}
