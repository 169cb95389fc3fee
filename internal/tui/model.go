// Package tui provides the interactive terminal statement viewer: the
// rendered page surface with anchor markers on the left, the entry list on
// the right.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/render"
	"github.com/ledgerlens/ledgerlens/internal/tui/components"
	"github.com/ledgerlens/ledgerlens/internal/tui/themes"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

// Config wires the TUI to an engine session and its rendering surface.
type Config struct {
	Session  *viewer.Session
	Renderer *render.Layout
	Theme    themes.Theme
}

type focusPane int

const (
	focusList focusPane = iota
	focusPage
)

// refreshMsg asks the model to re-read session state after a debounced
// recompute has had time to land.
type refreshMsg struct{}

// Model holds the viewer TUI state.
type Model struct {
	session  *viewer.Session
	renderer *render.Layout
	theme    themes.Theme
	keymap   KeyMap
	list     components.EntryListModel
	page     components.PageViewModel
	summary  components.SummaryModel
	pages    []int
	filters  []viewer.StatusFilter
	pageIdx  int
	filter   int
	width    int
	height   int
	focus    focusPane
	quitting bool
}

func newModel(cfg Config) Model {
	theme := cfg.Theme
	if theme.StatusStyles == nil {
		theme = themes.Default
	}

	filters := []viewer.StatusFilter{viewer.FilterAll}
	for _, status := range model.StatusOrder {
		filters = append(filters, viewer.FilterFor(status))
	}

	m := Model{
		session:  cfg.Session,
		renderer: cfg.Renderer,
		theme:    theme,
		keymap:   DefaultKeyMap(),
		list:     components.NewEntryList(cfg.Session.Entries(), theme),
		page:     components.NewPageView(theme),
		summary:  components.NewSummary(cfg.Session.Document(), cfg.Session.Metrics(), theme),
		pages:    cfg.Session.Pages(),
		filters:  filters,
		width:    120,
		height:   40,
	}
	m.list.Focus()
	return m
}

// Init signals render completion for every page and schedules the first
// state refresh for after the debounce window.
func (m Model) Init() tea.Cmd {
	for _, page := range m.pages {
		m.session.RenderCompleted(page)
	}
	return tea.Batch(tea.EnterAltScreen, m.refreshLater())
}

// refreshLater waits out the debounce (plus settling slack) and then
// re-reads session state.
func (m Model) refreshLater() tea.Cmd {
	return tea.Tick(viewer.DefaultDebounce*3, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusPage {
		m.page, cmd = m.page.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.SwitchPane):
		if m.focus == focusList {
			m.focus = focusPage
			m.list.Blur()
		} else {
			m.focus = focusList
			m.list.Focus()
		}
		return m, nil

	case key.Matches(msg, k.Filter):
		m.filter = (m.filter + 1) % len(m.filters)
		m.session.Controller().SetFilter(m.filters[m.filter])
		m.list.SetItems(m.session.Entries())
		return m, nil

	case key.Matches(msg, k.Select):
		if item, ok := m.list.SelectedItem(); ok {
			m.selectEntry(item.Entry.ID)
		}
		return m, nil

	case key.Matches(msg, k.NextPage):
		if m.pageIdx < len(m.pages)-1 {
			m.pageIdx++
			m.showPage()
		}
		return m, nil

	case key.Matches(msg, k.PrevPage):
		if m.pageIdx > 0 {
			m.pageIdx--
			m.showPage()
		}
		return m, nil

	case key.Matches(msg, k.ZoomIn):
		m.session.ZoomIn()
		return m, m.refreshLater()

	case key.Matches(msg, k.ZoomOut):
		m.session.ZoomOut()
		return m, m.refreshLater()

	case key.Matches(msg, k.ZoomReset):
		m.session.ZoomReset()
		return m, m.refreshLater()
	}

	var cmd tea.Cmd
	if m.focus == focusList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.page, cmd = m.page.Update(msg)
	}
	return m, cmd
}

// selectEntry drives cross-highlighting: the selection lands in the
// controller, the page surface jumps to the overlay when one exists.
func (m *Model) selectEntry(id model.EntryID) {
	m.session.Controller().Select(id)
	if _, page, ok := m.session.OverlayFor(id); ok {
		for i, p := range m.pages {
			if p == page {
				m.pageIdx = i
				break
			}
		}
		m.showPage()
		m.page.ScrollToEntry(id)
	}
	selected := id
	m.page.SetSelected(&selected)
	m.list.FocusEntry(id)
}

// refresh re-reads all session state after a recompute.
func (m *Model) refresh() {
	m.list.SetItems(m.session.Entries())
	m.summary.SetCounts(m.session.Summary())
	m.showPage()
}

// showPage loads the current page's fragments, claims, and overlays into
// the page surface.
func (m *Model) showPage() {
	if len(m.pages) == 0 {
		return
	}
	page := m.pages[m.pageIdx]
	m.page.SetPage(page,
		m.renderer.Fragments(page),
		m.session.Claims(page),
		m.session.Overlays(page))
	if id, ok := m.session.Controller().Selected(); ok {
		m.page.SetSelected(&id)
	}
}

func (m *Model) layout() {
	listWidth := m.width * 2 / 5
	pageWidth := m.width - listWidth - 2
	contentHeight := m.height - 9

	m.summary.Resize(m.width)
	m.list.Resize(listWidth, contentHeight)
	m.page.Resize(pageWidth, contentHeight)
}

// View renders the full viewer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.height < 12 {
		return "Terminal too small"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.page.View(), " ", m.list.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.summary.View(), body, m.footer())
}

func (m Model) footer() string {
	filter := string(m.filters[m.filter])
	hints := []string{
		"[↑↓] navigate",
		"[enter] select",
		"[f] filter: " + filter,
		"[[]] page",
		fmt.Sprintf("[+/-/0] zoom %d%%", int(m.session.Zoom()*100)),
		"[tab] pane",
		"[q] quit",
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}
