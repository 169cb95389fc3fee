// Package components holds the composable pieces of the statement viewer
// TUI.
package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/token"
	"github.com/ledgerlens/ledgerlens/internal/tui/themes"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

// EntryListModel renders the side panel: the ordered, filtered entries with
// their status pills and anchoring indicators.
type EntryListModel struct {
	theme  themes.Theme
	items  []viewer.ListItem
	table  table.Model
	width  int
	height int
}

// NewEntryList creates the side list.
func NewEntryList(items []viewer.ListItem, theme themes.Theme) EntryListModel {
	columns := []table.Column{
		{Title: "Status", Width: 14},
		{Title: "Entry", Width: 30},
		{Title: "Page", Width: 5},
		{Title: "Date", Width: 10},
		{Title: "Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := EntryListModel{
		theme:  theme,
		table:  t,
		width:  60,
		height: 24,
	}
	m.SetItems(items)
	return m
}

// SetItems replaces the list contents, keeping the cursor in range.
func (m *EntryListModel) SetItems(items []viewer.ListItem) {
	m.items = items
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, m.buildRow(item))
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *EntryListModel) buildRow(item viewer.ListItem) table.Row {
	entry := item.Entry

	status := entry.Status.Label()
	switch {
	case item.NotHighlighted():
		status += " !"
	case item.LacksPage():
		status += " ?"
	}

	label := entry.Label
	if entry.Narrative != "" {
		label = truncate(entry.Narrative, 30)
	}

	page := "?"
	if entry.PageNumber != nil {
		page = fmt.Sprintf("%d", *entry.PageNumber)
	}

	date := ""
	if !entry.TranDate.IsZero() {
		date = entry.TranDate.Format("2006-01-02")
	}

	amount := "—"
	if !entry.Amount().IsZero() {
		amount = token.FormatAmount(entry.Amount())
	}

	return table.Row{status, label, page, date, amount}
}

// Update forwards navigation messages to the table.
func (m EntryListModel) Update(msg tea.Msg) (EntryListModel, tea.Cmd) {
	newTable, cmd := m.table.Update(msg)
	m.table = newTable
	return m, cmd
}

// View renders the list.
func (m EntryListModel) View() string {
	return m.table.View()
}

// SelectedItem returns the item under the cursor.
func (m EntryListModel) SelectedItem() (viewer.ListItem, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.items) {
		return viewer.ListItem{}, false
	}
	return m.items[cursor], true
}

// FocusEntry moves the cursor to the row for the given entry, if listed.
func (m *EntryListModel) FocusEntry(id model.EntryID) {
	for i, item := range m.items {
		if item.Entry.ID == id {
			m.table.SetCursor(i)
			return
		}
	}
}

// Focus gives the table keyboard focus.
func (m *EntryListModel) Focus() { m.table.Focus() }

// Blur removes keyboard focus.
func (m *EntryListModel) Blur() { m.table.Blur() }

// Resize adjusts the list to the available area.
func (m *EntryListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(1, height-2))

	available := max(50, width-4)
	m.table.SetColumns([]table.Column{
		{Title: "Status", Width: max(12, available*18/100)},
		{Title: "Entry", Width: max(18, available*40/100)},
		{Title: "Page", Width: 5},
		{Title: "Date", Width: 10},
		{Title: "Amount", Width: max(10, available*16/100)},
	})
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
