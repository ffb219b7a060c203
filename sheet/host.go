package sheet

// Host receives the externally visible effects of a Sheet. Implementations
// render them however the surrounding UI needs to.
type Host interface {
	// SetVisible toggles the accessibility-visible flag of the panel.
	SetVisible(visible bool)
	// SetScrollLock toggles the scroll lock on the host document body.
	SetScrollLock(locked bool)
	// SetDragLock applies or removes the "grabbing" cursor and
	// selection lock while a drag is in progress.
	SetDragLock(locked bool)
	// SetRenderedHeight is called with the clamped height in vh.
	SetRenderedHeight(vh float64)
	// SetFullscreen toggles fullscreen visual mode.
	SetFullscreen(fullscreen bool)
}

// State is a Host that records the last value of every effect.
type State struct {
	Visible        bool
	ScrollLock     bool
	DragLock       bool
	Fullscreen     bool
	RenderedHeight float64
}

func (s *State) SetVisible(visible bool)      { s.Visible = visible }
func (s *State) SetScrollLock(locked bool)    { s.ScrollLock = locked }
func (s *State) SetDragLock(locked bool)      { s.DragLock = locked }
func (s *State) SetRenderedHeight(vh float64) { s.RenderedHeight = vh }
func (s *State) SetFullscreen(full bool)      { s.Fullscreen = full }

type nopHost struct{}

func (nopHost) SetVisible(bool)           {}
func (nopHost) SetScrollLock(bool)        {}
func (nopHost) SetDragLock(bool)          {}
func (nopHost) SetRenderedHeight(float64) {}
func (nopHost) SetFullscreen(bool)        {}
