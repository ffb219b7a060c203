// Package tui renders a sheet.Sheet as a bottom sheet in a Bubble Tea
// program and wires mouse drags, the close button and the dismiss overlay
// to it.
package tui

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/bottomsheet/sheet"
)

// SnapMsg is sent after a drag has been released.
type SnapMsg struct {
	Snap sheet.Snap
}

// DismissedMsg is sent when the user closes the sheet through the close
// button, the overlay or the close key.
type DismissedMsg struct{}

// InitErrorMsg is sent when the sheet could not be measured.
type InitErrorMsg struct {
	Err error
}

// Options configures a Model.
type Options struct {
	Title string
	// CloseEnabled renders a close button in the header.
	CloseEnabled bool
	// Drag enables the drag handle. Without it the sheet is a fullscreen
	// modal.
	Drag   bool
	Keys   KeyMap
	Logger *slog.Logger
}

// Model is a bottom sheet wrapping a content model. The sheet state is
// created on the first tea.WindowSizeMsg, when the viewport is known.
type Model struct {
	id      string
	opts    Options
	content tea.Model
	host    *sheet.State
	sheet   *sheet.Sheet
	err     error
	log     *slog.Logger

	width  int
	height int

	// hit reports whether msg falls inside the zone with the given id.
	hit func(id string, msg tea.MouseMsg) bool
}

// New creates a hidden bottom sheet around content. Zero Keys get
// DefaultKeyMap.
func New(content tea.Model, opts Options) *Model {
	if !opts.Keys.Open.Enabled() && !opts.Keys.Close.Enabled() && !opts.Keys.Fullscreen.Enabled() {
		opts.Keys = DefaultKeyMap()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Model{
		id:      zone.NewPrefix(),
		opts:    opts,
		content: content,
		host:    &sheet.State{},
		log:     log,
		hit: func(id string, msg tea.MouseMsg) bool {
			return zone.Get(id).InBounds(msg)
		},
	}
}

func (m *Model) Init() tea.Cmd {
	if m.content == nil {
		return nil
	}
	return m.content.Init()
}

func (m *Model) isInitialized() bool {
	return m.sheet != nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg)

	case tea.KeyMsg:
		if !m.isInitialized() {
			return m, nil
		}
		if !m.sheet.Shown() {
			if key.Matches(msg, m.opts.Keys.Open) {
				m.sheet.Open()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.opts.Keys.Close):
			m.sheet.Close()
			return m, dismissed
		case key.Matches(msg, m.opts.Keys.Fullscreen):
			m.sheet.ForceFullscreen()
			return m, nil
		}

	case tea.MouseMsg:
		if !m.isInitialized() || !m.sheet.Shown() {
			return m, nil
		}
		if handled, cmd := m.handleMouse(msg); handled {
			return m, cmd
		}
	}

	if !m.isInitialized() || !m.sheet.Shown() || m.content == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

// resize creates the sheet on the first size message and keeps the
// viewport up to date afterwards. A collapsed viewport after that keeps the
// last usable height for drags.
func (m *Model) resize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	var cmd tea.Cmd
	if m.content != nil {
		m.content, cmd = m.content.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: max(msg.Height-lipgloss.Height(m.renderHeader()), 1),
		})
	}

	if m.isInitialized() {
		if err := m.sheet.Resize(msg.Height); err != nil {
			m.log.Warn("ignoring resize", "width", msg.Width, "height", msg.Height, "err", err)
		}
		return cmd
	}
	if m.err != nil {
		return cmd
	}

	contentHeight := 0
	if m.content != nil {
		contentHeight = lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.content.View())
	}
	s, err := sheet.New(m.host, sheet.Config{
		ContentHeight:  contentHeight,
		ViewportHeight: msg.Height,
		Drag:           m.opts.Drag,
		CloseEnabled:   m.opts.CloseEnabled,
		Logger:         m.opts.Logger,
	})
	if err != nil {
		m.err = err
		if cmd == nil {
			return initError(err)
		}
		return tea.Batch(cmd, initError(err))
	}
	m.sheet = s
	return cmd
}

// handleMouse routes drags on the handle to the sheet and clicks on the
// close button or the overlay to Close. Returns true if the event was
// consumed.
func (m *Model) handleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.sheet.CanDrag() && m.hit(m.handleID(), msg) {
			m.sheet.DragStart(float64(msg.Y))
			return true, nil
		}
	case tea.MouseActionMotion:
		if m.sheet.Dragging() {
			m.sheet.DragMove(float64(msg.Y))
			return true, nil
		}
	case tea.MouseActionRelease:
		if m.sheet.Dragging() {
			snap, _ := m.sheet.DragEnd()
			return true, func() tea.Msg { return SnapMsg{Snap: snap} }
		}
		if msg.Button != tea.MouseButtonLeft {
			return false, nil
		}
		if (m.opts.CloseEnabled && m.hit(m.closeID(), msg)) || m.hit(m.overlayID(), msg) {
			m.sheet.Close()
			return true, dismissed
		}
	}
	return false, nil
}

// Open shows the sheet. Ignored until the first size message arrives.
func (m *Model) Open() {
	if m.isInitialized() {
		m.sheet.Open()
	}
}

// Close hides the sheet.
func (m *Model) Close() {
	if m.isInitialized() {
		m.sheet.Close()
	}
}

// ForceFullscreen expands the sheet to the whole viewport.
func (m *Model) ForceFullscreen() {
	if m.isInitialized() {
		m.sheet.ForceFullscreen()
	}
}

// Dispose releases the sheet state. The model renders nothing afterwards.
func (m *Model) Dispose() {
	if m.isInitialized() {
		m.sheet.Dispose()
	}
}

// Shown reports whether the sheet is visible.
func (m *Model) Shown() bool {
	return m.isInitialized() && m.host.Visible
}

// Sheet returns the underlying state, or nil before the first size message.
func (m *Model) Sheet() *sheet.Sheet { return m.sheet }

// Err returns the initialization error, if any.
func (m *Model) Err() error { return m.err }

// Content returns the wrapped content model.
func (m *Model) Content() tea.Model { return m.content }

func (m *Model) handleID() string  { return m.id + "handle" }
func (m *Model) closeID() string   { return m.id + "close" }
func (m *Model) overlayID() string { return m.id + "overlay" }

func dismissed() tea.Msg { return DismissedMsg{} }

func initError(err error) tea.Cmd {
	return func() tea.Msg { return InitErrorMsg{Err: err} }
}
