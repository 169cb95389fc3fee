package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/tui/themes"
)

// PageViewModel renders one statement page: the fragments in layout order,
// claimed anchor text colored by status, and a marker pill above each
// anchored line.
type PageViewModel struct {
	theme     themes.Theme
	fragments []anchor.Fragment
	claims    map[int]anchor.Claim
	overlays  []model.Overlay
	selected  *model.EntryID
	viewport  viewport.Model
	page      int
}

// NewPageView creates an empty page surface.
func NewPageView(theme themes.Theme) PageViewModel {
	vp := viewport.New(80, 24)
	return PageViewModel{theme: theme, viewport: vp}
}

// SetPage replaces the rendered page content for the current pass.
func (m *PageViewModel) SetPage(page int, fragments []anchor.Fragment, claims map[int]anchor.Claim, overlays []model.Overlay) {
	m.page = page
	m.fragments = fragments
	m.claims = claims
	m.overlays = overlays
	m.viewport.SetContent(m.render())
}

// SetSelected updates the cross-highlighted entry.
func (m *PageViewModel) SetSelected(id *model.EntryID) {
	m.selected = id
	m.viewport.SetContent(m.render())
}

// ScrollToEntry brings the entry's anchor line into view.
func (m *PageViewModel) ScrollToEntry(id model.EntryID) {
	for idx, claim := range m.claims {
		if claim.EntryID == id {
			// Each fragment contributes one content line; markers add one
			// more line above their anchor.
			line := idx
			for _, ov := range m.overlays {
				if ovIdx, ok := m.fragmentIndexFor(ov.ID); ok && ovIdx < idx {
					line++
				}
			}
			m.viewport.SetYOffset(max(0, line-m.viewport.Height/2))
			return
		}
	}
}

func (m *PageViewModel) fragmentIndexFor(id model.EntryID) (int, bool) {
	for idx, claim := range m.claims {
		if claim.EntryID == id {
			return idx, true
		}
	}
	return 0, false
}

// render builds the page text: a marker line above each anchored fragment,
// the fragment lines themselves colored by claim status.
func (m *PageViewModel) render() string {
	markers := make(map[int][]model.Overlay, len(m.overlays))
	for _, ov := range m.overlays {
		if idx, ok := m.fragmentIndexFor(ov.ID); ok {
			markers[idx] = append(markers[idx], ov)
		}
	}

	var b strings.Builder
	for idx, frag := range m.fragments {
		for _, ov := range markers[idx] {
			style := m.theme.StatusStyle(ov.Status).Bold(true)
			pill := fmt.Sprintf("◉ %s", strings.ToUpper(ov.Label))
			if m.selected != nil && *m.selected == ov.ID {
				pill += " ◀"
			}
			b.WriteString(style.Render(pill))
			b.WriteByte('\n')
		}

		line := frag.Text
		if claim, ok := m.claims[idx]; ok {
			style := m.theme.StatusStyle(claim.Status)
			if m.selected != nil && *m.selected == claim.EntryID {
				style = m.theme.Selected
			}
			line = style.Render(line)
		} else {
			line = m.theme.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Update forwards scroll messages to the viewport.
func (m PageViewModel) Update(msg tea.Msg) (PageViewModel, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the page surface with its header line.
func (m PageViewModel) View() string {
	header := m.theme.Subtitle.Render(fmt.Sprintf("Page %d: %d fragments, %d markers",
		m.page, len(m.fragments), len(m.overlays)))
	return header + "\n" + m.viewport.View()
}

// Resize adjusts the page surface to the available area.
func (m *PageViewModel) Resize(width, height int) {
	m.viewport.Width = max(20, width)
	m.viewport.Height = max(5, height-1)
}
