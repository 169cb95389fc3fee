// Package anchor locates, for each entry grouped on a page, the rendered
// text fragment that best represents it.
package anchor

import (
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Fragment is a read-only view of one positioned unit of text produced by
// the rendering surface. Bounds are in the page surface's current coordinate
// space and are only valid for the render pass they were measured in.
type Fragment struct {
	Text   string
	Bounds model.Rect
}

// NormalizeText lowercases, collapses internal whitespace, and trims. Both
// fragment text and tokens pass through this before comparison.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
