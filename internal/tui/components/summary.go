package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/token"
	"github.com/ledgerlens/ledgerlens/internal/tui/themes"
	"github.com/ledgerlens/ledgerlens/internal/viewer"
)

// SummaryModel renders the header cards and the anchoring health line.
type SummaryModel struct {
	theme   themes.Theme
	doc     model.StatementDocument
	metrics model.Metrics
	counts  viewer.SummaryCounts
	width   int
}

// NewSummary creates the header component.
func NewSummary(doc model.StatementDocument, metrics model.Metrics, theme themes.Theme) SummaryModel {
	return SummaryModel{theme: theme, doc: doc, metrics: metrics, width: 100}
}

// SetCounts refreshes the aggregate counts after a render pass.
func (m *SummaryModel) SetCounts(counts viewer.SummaryCounts) {
	m.counts = counts
}

// Resize adjusts the header to the available width.
func (m *SummaryModel) Resize(width int) {
	m.width = width
}

// View renders the document title, the metric cards, and the indicator line.
func (m SummaryModel) View() string {
	title := m.theme.Title.Render(m.doc.Filename)
	uploaded := "uploaded n/a"
	if !m.doc.UploadedAt.IsZero() {
		uploaded = "uploaded " + m.doc.UploadedAt.Format("2006-01-02 15:04")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Total Credit", amountOrDash(m.metrics.TotalCredit)),
		m.card("Total Debit", amountOrDash(m.metrics.TotalDebit)),
		m.card("Transactions", fmt.Sprintf("%d", m.metrics.TotalTransactions)),
		m.card("Duplicates", fmt.Sprintf("%d (archived: %d)", m.metrics.DuplicateCount, m.metrics.ArchivedCount)),
	)

	var indicators []string
	if m.counts.Outcomes.Unmatched > 0 {
		indicators = append(indicators, m.theme.Alert.Render(
			fmt.Sprintf("%d entries not highlighted", m.counts.Outcomes.Unmatched)))
	}
	if m.counts.LackingPage > 0 {
		indicators = append(indicators, m.theme.Warning.Render(
			fmt.Sprintf("%d entries lack page metadata", m.counts.LackingPage)))
	}
	indicator := strings.Join(indicators, "  ")

	parts := []string{title + "  " + m.theme.Subtitle.Render(uploaded), cards}
	if indicator != "" {
		parts = append(parts, indicator)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m SummaryModel) card(label, value string) string {
	content := m.theme.Subtitle.Render(label) + "\n" + m.theme.Title.Render(value)
	return m.theme.BorderedBox.Render(content)
}

func amountOrDash(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "—"
	}
	return token.FormatAmount(amount)
}
