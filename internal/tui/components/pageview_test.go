package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/tui/themes"
)

func samplePage() ([]anchor.Fragment, map[int]anchor.Claim, []model.Overlay) {
	fragments := []anchor.Fragment{
		{Text: "STATEMENT OF ACCOUNT"},
		{Text: "02/06/2024  FT24001ABC  12,345.60"},
	}
	claims := map[int]anchor.Claim{
		1: {EntryID: model.TransactionID(1), Status: model.StatusAutoAssigned},
	}
	overlays := []model.Overlay{
		{ID: model.TransactionID(1), Status: model.StatusAutoAssigned, Label: "Auto-assigned"},
	}
	return fragments, claims, overlays
}

func TestPageViewRendersMarkerAboveAnchor(t *testing.T) {
	m := NewPageView(themes.Default)
	m.Resize(100, 30)
	fragments, claims, overlays := samplePage()
	m.SetPage(2, fragments, claims, overlays)

	view := m.View()
	assert.Contains(t, view, "Page 2")
	assert.Contains(t, view, "STATEMENT OF ACCOUNT")
	assert.Contains(t, view, "◉ AUTO-ASSIGNED")
	assert.Contains(t, view, "FT24001ABC")
}

func TestPageViewSelectionIndicator(t *testing.T) {
	m := NewPageView(themes.Default)
	m.Resize(100, 30)
	fragments, claims, overlays := samplePage()
	m.SetPage(2, fragments, claims, overlays)

	selected := model.TransactionID(1)
	m.SetSelected(&selected)

	assert.Contains(t, m.View(), "◀")
}

func TestPageViewEmptyPage(t *testing.T) {
	m := NewPageView(themes.Default)
	m.SetPage(1, nil, nil, nil)

	assert.Contains(t, m.View(), "0 fragments")
}
