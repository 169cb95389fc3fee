// Package render lays statement page text out into positioned fragments.
// It stands in for a document rendering surface: each printed line becomes
// one fragment with a rectangle in page coordinates, rescaled by zoom.
package render

import (
	"strings"
	"sync"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Base geometry at zoom 1.0, in page surface units.
const (
	baseCharWidth  = 7.2
	baseLineHeight = 16.0
	baseMargin     = 24.0
)

// Layout renders page text into fragments. Zoom changes alter every
// fragment rectangle, so consumers must re-measure after SetZoom.
type Layout struct {
	pages map[int][]string
	order []int
	zoom  float64
	mu    sync.RWMutex
}

// New builds a layout over the document's page text.
func New(pages []model.PageText) *Layout {
	l := &Layout{
		pages: make(map[int][]string, len(pages)),
		order: make([]int, 0, len(pages)),
		zoom:  1.0,
	}
	for _, page := range pages {
		l.pages[page.PageNumber] = page.Lines
		l.order = append(l.order, page.PageNumber)
	}
	return l
}

// PageCount reports how many pages carry text.
func (l *Layout) PageCount() int {
	return len(l.pages)
}

// PageNumbers returns the page numbers in payload order.
func (l *Layout) PageNumbers() []int {
	return l.order
}

// SetZoom rescales the layout. Factor is applied as-is; clamping is the
// viewer's responsibility.
func (l *Layout) SetZoom(factor float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zoom = factor
}

// Zoom returns the current zoom factor.
func (l *Layout) Zoom() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zoom
}

// Fragments lays out the page's lines at the current zoom. Blank lines
// occupy vertical space but produce no fragment. An unknown page yields no
// fragments, which the engine treats as a not-yet-rendered surface.
func (l *Layout) Fragments(page int) []anchor.Fragment {
	l.mu.RLock()
	zoom := l.zoom
	lines, ok := l.pages[page]
	l.mu.RUnlock()
	if !ok {
		return nil
	}

	charWidth := baseCharWidth * zoom
	lineHeight := baseLineHeight * zoom
	margin := baseMargin * zoom

	fragments := make([]anchor.Fragment, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		runes := len([]rune(line))
		fragments = append(fragments, anchor.Fragment{
			Text: line,
			Bounds: model.Rect{
				Top:    margin + float64(i)*lineHeight,
				Left:   margin,
				Width:  float64(runes) * charWidth,
				Height: lineHeight,
			},
		})
	}
	return fragments
}
