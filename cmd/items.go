package cmd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxVisibleItems = 12

var defaultItems = []string{
	"Share link",
	"Copy to folder",
	"Rename",
	"Move to trash",
	"Show details",
	"Open with editor",
}

// itemList is the sheet content: a focused table of items.
type itemList struct {
	table table.Model
}

func newItemList(items []string) *itemList {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Item", Width: 40},
	}
	rows := make([]table.Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), item})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		// the height covers the header and its border
		table.WithHeight(min(max(len(items), 1), maxVisibleItems)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &itemList{table: t}
}

func (l *itemList) Init() tea.Cmd {
	return nil
}

func (l *itemList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		l.table.SetWidth(msg.Width)
		cols := l.table.Columns()
		if len(cols) == 2 {
			cols[1].Width = max(msg.Width-cols[0].Width-4, 10)
			l.table.SetColumns(cols)
		}
		return l, nil
	}
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return l, cmd
}

func (l *itemList) View() string {
	return l.table.View()
}

// Selected returns the selected item, or "" for an empty list.
func (l *itemList) Selected() string {
	row := l.table.SelectedRow()
	if len(row) < 2 {
		return ""
	}
	return row[1]
}

// readItems returns the non-blank lines of r.
func readItems(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
