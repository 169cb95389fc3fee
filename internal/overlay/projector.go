// Package overlay turns matched fragment positions into the marker
// descriptors the rendering surface draws.
package overlay

import (
	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// LabelHeight is how far above the anchor text a marker sits, in page
// surface units.
const LabelHeight = 18

// topInset is the lowest allowed marker top; a marker near the page's top
// edge is pinned here rather than rendered above the page.
const topInset = 6

// Project converts a pass's matches into overlay descriptors, positioned
// relative to the page surface. The full set is recomputed every render
// pass; nothing is diffed against the previous pass.
func Project(matches []anchor.Match) []model.Overlay {
	overlays := make([]model.Overlay, 0, len(matches))
	for _, m := range matches {
		top := m.Bounds.Top - LabelHeight
		if top < topInset {
			top = topInset
		}
		overlays = append(overlays, model.Overlay{
			ID:     m.EntryID,
			Status: m.Status,
			Label:  m.Status.Label(),
			Top:    top,
			Left:   m.Bounds.Left,
			Width:  m.Bounds.Width,
		})
	}
	return overlays
}
