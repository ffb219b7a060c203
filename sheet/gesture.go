// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package sheet

// DragState represents the current state of a drag operation
type DragState int

const (
	DragStateIdle DragState = iota
	DragStateDragging
)

// DragTarget consumes the output of a GestureTracker.
type DragTarget interface {
	// ViewportHeight is the height deltas are normalized against.
	ViewportHeight() int
	OnDragDelta(deltaVh float64)
	ResolveDragEnd() Snap
}

// GestureTracker turns pointer down/move/up events into vh deltas for a
// DragTarget. Only one drag session is tracked at a time.
type GestureTracker struct {
	state  DragState
	lastY  float64 // valid only while dragging
	target DragTarget
	host   Host
}

// NewGestureTracker creates an idle tracker feeding target. The host
// receives the drag lock effect; nil discards it.
func NewGestureTracker(target DragTarget, host Host) *GestureTracker {
	if host == nil {
		host = nopHost{}
	}
	return &GestureTracker{
		state:  DragStateIdle,
		target: target,
		host:   host,
	}
}

// Start anchors a drag at pointerY. Starting again while a drag is active
// rebinds the anchor and drops the previous reference point.
func (g *GestureTracker) Start(pointerY float64) {
	g.state = DragStateDragging
	g.lastY = pointerY
	g.host.SetDragLock(true)
}

// Move emits the delta since the last pointer position, in percent of the
// viewport height. Dragging up (smaller Y) is positive. Returns false if no
// drag is active.
func (g *GestureTracker) Move(pointerY float64) (float64, bool) {
	if g.state != DragStateDragging {
		return 0, false
	}
	rows := g.target.ViewportHeight()
	if rows <= 0 {
		return 0, false
	}
	deltaY := g.lastY - pointerY
	deltaVh := deltaY / float64(rows) * 100
	g.target.OnDragDelta(deltaVh)
	g.lastY = pointerY
	return deltaVh, true
}

// End finishes the drag and asks the target for a snap decision. Returns
// false if no drag was active.
func (g *GestureTracker) End() (Snap, bool) {
	if g.state != DragStateDragging {
		return SnapNone, false
	}
	g.reset()
	return g.target.ResolveDragEnd(), true
}

// IsDragging returns true if currently in a drag operation
func (g *GestureTracker) IsDragging() bool {
	return g.state == DragStateDragging
}

// LastY returns the last pointer position of the active drag.
func (g *GestureTracker) LastY() (float64, bool) {
	if g.state != DragStateDragging {
		return 0, false
	}
	return g.lastY, true
}

// cancel drops the active drag without a snap decision.
func (g *GestureTracker) cancel() {
	if g.state == DragStateDragging {
		g.reset()
	}
}

func (g *GestureTracker) reset() {
	g.state = DragStateIdle
	g.lastY = 0
	g.host.SetDragLock(false)
}
