// Package sheet implements the height and visibility state of a draggable
// bottom sheet. All heights are in vh: percent of the viewport height.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

const (
	// MaxDefaultHeight caps the resting height computed from content.
	MaxDefaultHeight = 65.0
	// FullHeight is the fullscreen height.
	FullHeight = 100.0

	closeSlack = 5.0  // net downward drag from the drag start that closes
	snapBand   = 10.0 // distance from the default height that snaps away from it
)

var (
	// ErrNoContent is returned by New when there is no content to measure.
	ErrNoContent = errors.New("sheet: no measurable content")
	// ErrNoViewport is returned when the viewport height is not positive.
	ErrNoViewport = errors.New("sheet: viewport height unavailable")
)

// Snap is the resting position chosen at the end of a drag.
type Snap int

const (
	SnapNone Snap = iota
	SnapClosed
	SnapDefault
	SnapFullscreen
)

func (s Snap) String() string {
	switch s {
	case SnapClosed:
		return "closed"
	case SnapDefault:
		return "default"
	case SnapFullscreen:
		return "fullscreen"
	default:
		return "none"
	}
}

// Position is the coarse visual state of a sheet.
type Position int

const (
	PositionClosed Position = iota
	PositionPartial
	PositionFullscreen
)

func (p Position) String() string {
	switch p {
	case PositionPartial:
		return "partial"
	case PositionFullscreen:
		return "fullscreen"
	default:
		return "closed"
	}
}

// Config holds what a Sheet needs from its host at construction time.
type Config struct {
	// ContentHeight is the natural rendered height of the panel, in the
	// same unit as ViewportHeight (terminal rows).
	ContentHeight int
	// ViewportHeight is the height of the host viewport.
	ViewportHeight int
	// Drag enables the drag surface. When false the sheet is always
	// fullscreen while shown.
	Drag bool
	// CloseEnabled shows a close button in the header.
	CloseEnabled bool
	// Logger receives snap decisions at debug level. Nil discards.
	Logger *slog.Logger
}

// Sheet owns the height state of one bottom sheet.
type Sheet struct {
	host     Host
	log      *slog.Logger
	drag     bool
	closable bool
	viewport int

	current    float64
	def        float64
	preDrag    float64
	shown      bool
	fullscreen bool
	disposed   bool

	gesture *GestureTracker
}

// New measures the default height from cfg and returns a hidden sheet.
// A nil host discards every effect.
func New(host Host, cfg Config) (*Sheet, error) {
	if cfg.ContentHeight <= 0 {
		return nil, fmt.Errorf("content height %d: %w", cfg.ContentHeight, ErrNoContent)
	}
	if cfg.ViewportHeight <= 0 {
		return nil, fmt.Errorf("viewport height %d: %w", cfg.ViewportHeight, ErrNoViewport)
	}
	if host == nil {
		host = nopHost{}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Sheet{
		host:     host,
		log:      log,
		drag:     cfg.Drag,
		closable: cfg.CloseEnabled,
		viewport: cfg.ViewportHeight,
	}
	s.gesture = NewGestureTracker(s, host)
	s.def = math.Min(float64(cfg.ContentHeight)/float64(cfg.ViewportHeight)*100, MaxDefaultHeight)
	s.preDrag = s.def
	if s.drag {
		s.SetHeight(s.def)
	} else {
		s.current = FullHeight
		s.SetHeight(FullHeight)
	}
	s.setShown(false)

	s.log.Debug("sheet created",
		"default_vh", s.def,
		"viewport", s.viewport,
		"drag", s.drag)
	return s, nil
}

// SetHeight clamps vh to [0, 100] and renders it. Without a drag surface the
// sheet stays fullscreen and the height is not changed.
func (s *Sheet) SetHeight(vh float64) {
	if s.disposed {
		return
	}
	if !s.drag {
		s.fullscreen = true
		s.host.SetFullscreen(true)
		return
	}
	if math.IsNaN(vh) {
		vh = 0
	}
	s.current = math.Max(0, math.Min(FullHeight, vh))
	s.host.SetRenderedHeight(s.current)
	s.fullscreen = s.current == FullHeight
	s.host.SetFullscreen(s.fullscreen)
}

// OnDragDelta moves the height by deltaVh.
func (s *Sheet) OnDragDelta(deltaVh float64) {
	s.SetHeight(s.current + deltaVh)
}

// ResolveDragEnd picks the resting position for a finished drag. The first
// matching rule wins:
//
//  1. ended more than 5vh below where the drag started: closed
//  2. ended more than 10vh below the default height: closed
//  3. ended more than 10vh above the default height: fullscreen
//  4. otherwise: back to the default height
//
// The resulting height becomes the reference for the next drag.
func (s *Sheet) ResolveDragEnd() Snap {
	if s.disposed {
		return SnapNone
	}
	ended := s.current

	var snap Snap
	switch {
	case s.preDrag-closeSlack > s.current:
		snap = SnapClosed
		s.setShown(false)
	case s.current < s.def-snapBand:
		snap = SnapClosed
		s.setShown(false)
	case s.current > s.def+snapBand:
		snap = SnapFullscreen
		s.SetHeight(FullHeight)
	default:
		snap = SnapDefault
		s.SetHeight(s.def)
	}

	s.log.Debug("drag resolved",
		"snap", snap.String(),
		"from_vh", s.preDrag,
		"ended_vh", ended,
		"default_vh", s.def)
	s.preDrag = s.current
	return snap
}

// Open shows the sheet at its default height. The drag reference is reset
// to 0, so only a drag ending more than 10vh below the default closes it
// right after opening.
func (s *Sheet) Open() {
	if s.disposed {
		return
	}
	s.preDrag = 0
	s.SetHeight(s.def)
	s.setShown(true)
}

// Close hides the sheet and resets the height for the next Open.
func (s *Sheet) Close() {
	if s.disposed {
		return
	}
	s.setShown(false)
	s.SetHeight(s.def)
}

// ForceFullscreen expands the sheet without changing its visibility.
func (s *Sheet) ForceFullscreen() {
	if s.disposed {
		return
	}
	s.preDrag = FullHeight
	s.SetHeight(FullHeight)
}

// DragStart begins a drag at pointerY. Ignored without a drag surface.
func (s *Sheet) DragStart(pointerY float64) {
	if s.disposed || !s.drag {
		return
	}
	s.gesture.Start(pointerY)
}

// DragMove follows the pointer and returns the applied delta in vh.
func (s *Sheet) DragMove(pointerY float64) (float64, bool) {
	if s.disposed || !s.drag {
		return 0, false
	}
	return s.gesture.Move(pointerY)
}

// DragEnd releases the drag and returns the snap decision.
func (s *Sheet) DragEnd() (Snap, bool) {
	if s.disposed || !s.drag {
		return SnapNone, false
	}
	return s.gesture.End()
}

// Resize updates the viewport height deltas are normalized against. The
// default height keeps the value measured by New.
func (s *Sheet) Resize(viewportHeight int) error {
	if viewportHeight <= 0 {
		return fmt.Errorf("resize to %d: %w", viewportHeight, ErrNoViewport)
	}
	s.viewport = viewportHeight
	return nil
}

// Dispose hides the sheet, drops any active drag and makes every further
// call a no-op.
func (s *Sheet) Dispose() {
	if s.disposed {
		return
	}
	s.gesture.cancel()
	s.setShown(false)
	s.disposed = true
}

// setShown keeps the accessibility and scroll lock flags in sync with the
// visibility of the sheet.
func (s *Sheet) setShown(shown bool) {
	s.shown = shown
	s.host.SetVisible(shown)
	s.host.SetScrollLock(shown)
}

func (s *Sheet) ViewportHeight() int    { return s.viewport }
func (s *Sheet) Height() float64        { return s.current }
func (s *Sheet) DefaultHeight() float64 { return s.def }
func (s *Sheet) PreDragHeight() float64 { return s.preDrag }
func (s *Sheet) Shown() bool            { return s.shown }
func (s *Sheet) Fullscreen() bool       { return s.fullscreen }
func (s *Sheet) Dragging() bool         { return s.gesture.IsDragging() }
func (s *Sheet) CanDrag() bool          { return s.drag }
func (s *Sheet) CloseEnabled() bool     { return s.closable }
func (s *Sheet) Disposed() bool         { return s.disposed }

// Position reports closed, partial or fullscreen.
func (s *Sheet) Position() Position {
	switch {
	case !s.shown || s.current <= 0:
		return PositionClosed
	case s.fullscreen:
		return PositionFullscreen
	default:
		return PositionPartial
	}
}
