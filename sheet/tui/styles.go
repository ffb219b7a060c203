package tui

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	overlayStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"})

	// Style for the drag handle
	handleStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#585858"})

	// Style for the drag handle while being dragged
	handleActiveStyle = handleStyle.
				Foreground(highlight).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 1)

	closeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#FFF", Dark: "#FFF"}).
				Background(highlight).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle)

	fullscreenTitleStyle = titleStyle.
				Foreground(special)
)
