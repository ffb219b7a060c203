package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

const handleThumb = "━━━━━━"

// View renders the sheet over an empty page.
func (m *Model) View() string {
	return m.Render("")
}

// Render draws the sheet over base. The rows above the sheet show base
// dimmed and act as the dismiss overlay. Hidden sheets return base as is.
func (m *Model) Render(base string) string {
	if !m.Shown() || m.height <= 0 {
		return base
	}

	rows := m.sheetRows()
	if rows <= 0 {
		return base
	}

	baseLines := strings.Split(base, "\n")
	var out []string
	if above := m.height - rows; above > 0 {
		dimmed := make([]string, above)
		for i := range dimmed {
			line := ""
			if i < len(baseLines) {
				line = ansi.Strip(baseLines[i])
			}
			dimmed[i] = overlayStyle.Render(fit(line, m.width))
		}
		out = append(out, zone.Mark(m.overlayID(), strings.Join(dimmed, "\n")))
	}
	out = append(out, m.renderPanel(rows))
	return strings.Join(out, "\n")
}

// sheetRows converts the rendered height to terminal rows.
func (m *Model) sheetRows() int {
	if m.host.Fullscreen {
		return m.height
	}
	rows := int(math.Round(m.host.RenderedHeight / 100 * float64(m.height)))
	return min(max(rows, 0), m.height)
}

// renderPanel renders the header and as much content as fits in rows.
func (m *Model) renderPanel(rows int) string {
	lines := strings.Split(m.renderHeader(), "\n")
	if m.content != nil {
		lines = append(lines, strings.Split(m.content.View(), "\n")...)
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i := range lines {
		lines[i] = fit(lines[i], m.width)
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", m.width))
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the drag handle (when dragging is enabled) and the
// title bar with its close button.
func (m *Model) renderHeader() string {
	var parts []string
	if m.opts.Drag {
		style := handleStyle
		if m.host.DragLock {
			style = handleActiveStyle
		}
		parts = append(parts, zone.Mark(m.handleID(), style.Width(m.width).Render(handleThumb)))
	}
	parts = append(parts, m.renderTitleBar())
	return headerStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderTitleBar() string {
	button := ""
	if m.opts.CloseEnabled {
		button = zone.Mark(m.closeID(), closeButtonStyle.Render("✕"))
	}
	buttonWidth := lipgloss.Width(button)

	style := titleStyle
	if m.host.Fullscreen {
		style = fullscreenTitleStyle
	}
	// Room left for the title once the button and the title padding are
	// accounted for.
	maxTitleWidth := max(m.width-buttonWidth-style.GetHorizontalPadding(), 0)
	title := style.Render(ansi.Truncate(m.opts.Title, maxTitleWidth, "…"))

	spacingWidth := max(m.width-lipgloss.Width(title)-buttonWidth, 0)
	spacing := strings.Repeat(" ", spacingWidth)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, spacing, button)
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return s
	}
}
