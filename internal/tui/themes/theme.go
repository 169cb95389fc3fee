// Package themes defines the visual styles for the statement viewer TUI.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	StatusStyles map[model.Status]lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Marker       lipgloss.Style
	Warning      lipgloss.Style
	Alert        lipgloss.Style
	Selected     lipgloss.Style
	BorderedBox  lipgloss.Style
	Muted        lipgloss.Color
	Border       lipgloss.Color
}

// Default is the default theme. Status colors follow the legend of the web
// dashboard: green auto, blue manual, yellow draft, gray unassigned, slate
// archived, red duplicate.
var Default = Theme{
	Muted:  lipgloss.Color("#737373"),
	Border: lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Marker: lipgloss.NewStyle().
		Bold(true).
		Reverse(true),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Alert: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("#3730a3")).
		Foreground(lipgloss.Color("#fafafa")),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),

	StatusStyles: map[model.Status]lipgloss.Style{
		model.StatusAutoAssigned:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
		model.StatusManualAssigned: lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		model.StatusDraft:          lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		model.StatusUnassigned:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		model.StatusArchived:       lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")),
		model.StatusDuplicate:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	},
}

// StatusStyle returns the style for a status, defaulting to unassigned gray.
func (t Theme) StatusStyle(status model.Status) lipgloss.Style {
	if style, ok := t.StatusStyles[status]; ok {
		return style
	}
	return t.StatusStyles[model.StatusUnassigned]
}
