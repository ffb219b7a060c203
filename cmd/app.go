package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/bottomsheet/internal/config"
	"github.com/rileylov/bottomsheet/sheet/tui"
)

var (
	pageTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666", Dark: "#AAA"})
)

type keyMap struct {
	sheet tui.KeyMap
	Copy  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		sheet: tui.DefaultKeyMap(),
		Copy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "copy item"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return append(k.sheet.ShortHelp(), k.Copy, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// app is the host page: a short description and status line with a bottom
// sheet of items on top.
type app struct {
	sheet  *tui.Model
	items  *itemList
	help   help.Model
	keys   keyMap
	log    *slog.Logger
	title  string
	status string
	err    error

	width  int
	height int

	// copy writes to the system clipboard.
	copy func(string) error
}

func newApp(cfg *config.Config, items []string, log *slog.Logger) *app {
	list := newItemList(items)
	keys := defaultKeyMap()
	return &app{
		sheet: tui.New(list, tui.Options{
			Title:        cfg.Title,
			CloseEnabled: cfg.CloseButton(),
			Drag:         cfg.DragEnabled(),
			Keys:         keys.sheet,
			Logger:       log,
		}),
		items:  list,
		help:   help.New(),
		keys:   keys,
		log:    log,
		title:  cfg.Title,
		status: "Press o to open the sheet",
		copy:   clipboard.WriteAll,
	}
}

func (a *app) Init() tea.Cmd {
	return a.sheet.Init()
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tui.InitErrorMsg:
		a.err = msg.Err
		a.log.Error("sheet init failed", "err", msg.Err)
		return a, tea.Quit

	case tui.SnapMsg:
		a.status = "Snapped to " + msg.Snap.String()
		a.log.Info("drag released", "snap", msg.Snap.String())
		return a, nil

	case tui.DismissedMsg:
		a.status = "Sheet closed"
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.sheet.Dispose()
			return a, tea.Quit
		case a.sheet.Shown() && key.Matches(msg, a.keys.Copy):
			a.copySelected()
			a.sheet.Close()
			return a, nil
		}
	}

	_, cmd := a.sheet.Update(msg)
	return a, cmd
}

func (a *app) copySelected() {
	item := a.items.Selected()
	if item == "" {
		a.status = "Nothing selected"
		return
	}
	if err := a.copy(item); err != nil {
		a.status = fmt.Sprintf("Couldn't write to clipboard: %v", err)
		a.log.Warn("clipboard write failed", "err", err)
		return
	}
	a.status = fmt.Sprintf("Copied %q", item)
}

func (a *app) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	return zone.Scan(a.sheet.Render(a.page()))
}

// page renders the host page underneath the sheet.
func (a *app) page() string {
	state := "closed"
	if s := a.sheet.Sheet(); s != nil {
		state = fmt.Sprintf("%s, %.1fvh (default %.1fvh)", s.Position(), s.Height(), s.DefaultHeight())
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		pageTitleStyle.Render(a.title),
		"Drag the handle to resize the sheet. Release above the default",
		"height to go fullscreen, below it to close.",
		"",
		statusStyle.Render("Sheet: "+state),
		statusStyle.Render("Status: "+a.status),
		"",
		a.help.View(a.keys),
	)
	lines := strings.Split(body, "\n")
	for len(lines) < a.height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:a.height], "\n")
}
