package sheet

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSheet returns a drag-capable sheet with a default height of 50vh.
func newTestSheet(t *testing.T) (*Sheet, *State) {
	t.Helper()
	host := &State{}
	s, err := New(host, Config{ContentHeight: 20, ViewportHeight: 40, Drag: true, CloseEnabled: true})
	require.NoError(t, err)
	return s, host
}

func TestNew_DefaultHeight(t *testing.T) {
	tests := []struct {
		name     string
		content  int
		viewport int
		want     float64
	}{
		{name: "half the viewport", content: 20, viewport: 40, want: 50},
		{name: "capped at 65", content: 39, viewport: 40, want: 65},
		{name: "taller than the viewport", content: 80, viewport: 40, want: 65},
		{name: "small content", content: 4, viewport: 40, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(nil, Config{ContentHeight: tt.content, ViewportHeight: tt.viewport, Drag: true})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, s.DefaultHeight(), 1e-9)
			assert.InDelta(t, tt.want, s.PreDragHeight(), 1e-9)
			assert.InDelta(t, tt.want, s.Height(), 1e-9)
		})
	}
}

func TestNew_StartsHidden(t *testing.T) {
	s, host := newTestSheet(t)

	assert.False(t, s.Shown())
	assert.False(t, host.Visible)
	assert.False(t, host.ScrollLock)
	assert.Equal(t, PositionClosed, s.Position())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&State{}, Config{ContentHeight: 0, ViewportHeight: 40, Drag: true})
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = New(&State{}, Config{ContentHeight: 10, ViewportHeight: 0, Drag: true})
	assert.ErrorIs(t, err, ErrNoViewport)
}

func TestSetHeight_Clamps(t *testing.T) {
	s, host := newTestSheet(t)

	for _, v := range []float64{-50, -0.1, 0, 12.5, 50, 99.9, 100, 100.1, 1e6, math.Inf(1), math.Inf(-1)} {
		s.SetHeight(v)
		want := math.Max(0, math.Min(100, v))
		assert.Equal(t, want, s.Height(), "SetHeight(%v)", v)
		assert.Equal(t, want, host.RenderedHeight, "rendered height for %v", v)
		assert.Equal(t, want == 100, s.Fullscreen(), "fullscreen for %v", v)
		assert.Equal(t, s.Fullscreen(), host.Fullscreen, "host fullscreen for %v", v)
	}
}

func TestSetHeight_NaN(t *testing.T) {
	s, _ := newTestSheet(t)

	s.SetHeight(math.NaN())
	assert.Equal(t, 0.0, s.Height())
}

func TestSetHeight_Idempotent(t *testing.T) {
	s, host := newTestSheet(t)

	s.SetHeight(42)
	before := *host
	s.SetHeight(42)
	assert.Equal(t, before, *host)
	assert.Equal(t, 42.0, s.Height())
}

func TestOnDragDelta_Composition(t *testing.T) {
	a, _ := newTestSheet(t)
	b, _ := newTestSheet(t)

	a.SetHeight(30)
	b.SetHeight(30)

	a.OnDragDelta(12.5)
	a.OnDragDelta(-7.25)
	b.OnDragDelta(12.5 - 7.25)

	assert.InDelta(t, b.Height(), a.Height(), 1e-9)
}

func TestOnDragDelta_ClampsAtBounds(t *testing.T) {
	s, _ := newTestSheet(t)

	s.SetHeight(95)
	s.OnDragDelta(20)
	assert.Equal(t, 100.0, s.Height())
	assert.True(t, s.Fullscreen())

	s.OnDragDelta(-250)
	assert.Equal(t, 0.0, s.Height())
	assert.False(t, s.Fullscreen())
}

func TestResolveDragEnd(t *testing.T) {
	tests := []struct {
		name       string
		preDrag    float64
		current    float64
		wantSnap   Snap
		wantHeight float64
		wantShown  bool
	}{
		// default height is 50 in every case
		{name: "well below default closes", preDrag: 50, current: 38, wantSnap: SnapClosed, wantHeight: 38},
		{name: "above the band goes fullscreen", preDrag: 50, current: 65, wantSnap: SnapFullscreen, wantHeight: 100, wantShown: true},
		{name: "inside the band returns to default", preDrag: 50, current: 55, wantSnap: SnapDefault, wantHeight: 50, wantShown: true},
		{name: "net downward drag closes near default", preDrag: 60, current: 54, wantSnap: SnapClosed, wantHeight: 54},
		{name: "small downward drag returns to default", preDrag: 50, current: 46, wantSnap: SnapDefault, wantHeight: 50, wantShown: true},
		{name: "drag down from below default closes", preDrag: 48, current: 42, wantSnap: SnapClosed, wantHeight: 42},
		{name: "exactly at the upper band edge stays default", preDrag: 50, current: 60, wantSnap: SnapDefault, wantHeight: 50, wantShown: true},
		{name: "exactly at the lower band edge stays default", preDrag: 40, current: 40, wantSnap: SnapDefault, wantHeight: 50, wantShown: true},
		{name: "fullscreen dragged slightly down stays fullscreen", preDrag: 100, current: 97, wantSnap: SnapFullscreen, wantHeight: 100, wantShown: true},
		{name: "fullscreen dragged down closes", preDrag: 100, current: 90, wantSnap: SnapClosed, wantHeight: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, host := newTestSheet(t)
			s.Open()
			s.preDrag = tt.preDrag
			s.SetHeight(tt.current)

			snap := s.ResolveDragEnd()

			assert.Equal(t, tt.wantSnap, snap)
			assert.Equal(t, tt.wantHeight, s.Height())
			assert.Equal(t, tt.wantShown, s.Shown())
			assert.Equal(t, tt.wantShown, host.Visible)
			assert.Equal(t, tt.wantShown, host.ScrollLock)
			assert.Equal(t, s.Height(), s.PreDragHeight(), "pre-drag height follows the settled height")
		})
	}
}

func TestResolveDragEnd_AfterOpenIsStable(t *testing.T) {
	s, _ := newTestSheet(t)
	s.Open()
	require.Equal(t, 0.0, s.PreDragHeight())

	snap := s.ResolveDragEnd()

	assert.Equal(t, SnapDefault, snap)
	assert.Equal(t, 50.0, s.Height())
	assert.True(t, s.Shown())
}

func TestDragEnd_ReleaseWithoutDrag(t *testing.T) {
	s, _ := newTestSheet(t)
	s.Open()

	snap, ok := s.DragEnd()
	assert.False(t, ok)
	assert.Equal(t, SnapNone, snap)
	assert.Equal(t, 0.0, s.PreDragHeight(), "a stray release leaves the reference alone")
	assert.True(t, s.Shown())

	// a click on the handle is a drag without movement and settles it
	s.DragStart(20)
	snap, ok = s.DragEnd()
	require.True(t, ok)
	assert.Equal(t, SnapDefault, snap)
	assert.Equal(t, 50.0, s.PreDragHeight())
}

func TestOpen(t *testing.T) {
	s, host := newTestSheet(t)
	s.SetHeight(80)

	s.Open()

	assert.True(t, s.Shown())
	assert.True(t, host.Visible)
	assert.True(t, host.ScrollLock)
	assert.Equal(t, 50.0, s.Height())
	assert.Equal(t, 0.0, s.PreDragHeight())
	assert.Equal(t, PositionPartial, s.Position())
}

func TestClose_Idempotent(t *testing.T) {
	s, host := newTestSheet(t)
	s.Open()
	s.ForceFullscreen()

	s.Close()
	onceHost := *host
	onceHeight, oncePre := s.Height(), s.PreDragHeight()

	s.Close()

	assert.Equal(t, onceHost, *host)
	assert.Equal(t, onceHeight, s.Height())
	assert.Equal(t, oncePre, s.PreDragHeight())
	assert.False(t, s.Shown())
	assert.Equal(t, 50.0, s.Height(), "height is reset for the next open")
	assert.False(t, host.Fullscreen)
}

func TestForceFullscreen(t *testing.T) {
	s, host := newTestSheet(t)

	s.ForceFullscreen()
	assert.Equal(t, 100.0, s.Height())
	assert.Equal(t, 100.0, s.PreDragHeight())
	assert.True(t, host.Fullscreen)
	assert.False(t, s.Shown(), "visibility is unchanged")

	s.Open()
	s.ForceFullscreen()
	assert.True(t, s.Shown())
	assert.Equal(t, PositionFullscreen, s.Position())
}

func TestWithoutDrag_AlwaysFullscreen(t *testing.T) {
	host := &State{}
	s, err := New(host, Config{ContentHeight: 10, ViewportHeight: 40})
	require.NoError(t, err)

	assert.Equal(t, 25.0, s.DefaultHeight())
	assert.Equal(t, 100.0, s.Height())
	assert.True(t, host.Fullscreen)

	s.Open()
	assert.Equal(t, PositionFullscreen, s.Position())

	s.SetHeight(30)
	assert.Equal(t, 100.0, s.Height())
	assert.True(t, s.Fullscreen())

	s.DragStart(10)
	assert.False(t, s.Dragging())
	_, ok := s.DragMove(5)
	assert.False(t, ok)
	_, ok = s.DragEnd()
	assert.False(t, ok)
	assert.False(t, host.DragLock)

	s.Close()
	assert.False(t, s.Shown())
}

func TestDrag_EndToEnd(t *testing.T) {
	s, host := newTestSheet(t)
	s.Open()

	// drag from row 20 up to row 14: 6 rows of 40 is 15vh
	s.DragStart(20)
	assert.True(t, host.DragLock)
	for _, y := range []float64{18, 16, 14} {
		_, ok := s.DragMove(y)
		require.True(t, ok)
	}
	assert.InDelta(t, 65.0, s.Height(), 1e-9)

	snap, ok := s.DragEnd()
	require.True(t, ok)
	assert.Equal(t, SnapFullscreen, snap)
	assert.Equal(t, 100.0, s.Height())
	assert.False(t, host.DragLock)
	assert.False(t, s.Dragging())

	// drag down 4 rows from fullscreen: 10vh, more than the 5vh slack
	s.DragStart(2)
	s.DragMove(6)
	snap, _ = s.DragEnd()
	assert.Equal(t, SnapClosed, snap)
	assert.False(t, s.Shown())
}

func TestResize(t *testing.T) {
	s, _ := newTestSheet(t)

	require.NoError(t, s.Resize(80))
	assert.Equal(t, 80, s.ViewportHeight())
	assert.Equal(t, 50.0, s.DefaultHeight(), "default height is measured once")

	err := s.Resize(0)
	assert.ErrorIs(t, err, ErrNoViewport)
	assert.Equal(t, 80, s.ViewportHeight())
}

func TestDispose(t *testing.T) {
	s, host := newTestSheet(t)
	s.Open()
	s.DragStart(10)
	require.True(t, host.DragLock)

	s.Dispose()

	assert.True(t, s.Disposed())
	assert.False(t, host.DragLock)
	assert.False(t, host.Visible)
	assert.False(t, host.ScrollLock)
	assert.False(t, s.Dragging())

	s.Open()
	s.ForceFullscreen()
	assert.False(t, s.Shown())
	assert.Equal(t, 50.0, s.Height())
	assert.Equal(t, SnapNone, s.ResolveDragEnd())
}

func TestResolveDragEnd_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := New(nil, Config{ContentHeight: 20, ViewportHeight: 40, Drag: true, Logger: log})
	require.NoError(t, err)

	s.Open()
	s.ResolveDragEnd()

	assert.True(t, strings.Contains(buf.String(), "snap=default"), buf.String())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "closed", SnapClosed.String())
	assert.Equal(t, "default", SnapDefault.String())
	assert.Equal(t, "fullscreen", SnapFullscreen.String())
	assert.Equal(t, "none", SnapNone.String())
	assert.Equal(t, "partial", PositionPartial.String())
	assert.Equal(t, "closed", PositionClosed.String())
	assert.Equal(t, "fullscreen", PositionFullscreen.String())
}
