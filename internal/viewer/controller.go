package viewer

import (
	"sync"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// StatusFilter narrows the side list to one status, or shows everything.
type StatusFilter string

// FilterAll shows every entry regardless of status.
const FilterAll StatusFilter = "all"

// FilterFor returns the filter that narrows to a single status.
func FilterFor(status model.Status) StatusFilter {
	return StatusFilter(status)
}

// Allows reports whether an entry with the given status passes the filter.
func (f StatusFilter) Allows(status model.Status) bool {
	return f == FilterAll || f == "" || StatusFilter(status) == f
}

// Controller holds the active status filter and the selected entry. The
// filter narrows the side list only; page overlays always render in full,
// since hiding them would also hide the on-page anchor highlighting.
type Controller struct {
	onSelect func(model.EntryID)
	selected *model.EntryID
	filter   StatusFilter
	mu       sync.Mutex
}

// NewController creates a controller showing all statuses with nothing
// selected. onSelect, if non-nil, is invoked after every selection change
// so the UI can scroll the overlay or list row into view.
func NewController(onSelect func(model.EntryID)) *Controller {
	return &Controller{filter: FilterAll, onSelect: onSelect}
}

// Select marks the entry as selected and fires the scroll hook.
func (c *Controller) Select(id model.EntryID) {
	c.mu.Lock()
	c.selected = &id
	hook := c.onSelect
	c.mu.Unlock()
	if hook != nil {
		hook(id)
	}
}

// Selected returns the current selection.
func (c *Controller) Selected() (model.EntryID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return model.EntryID{}, false
	}
	return *c.selected, true
}

// SetFilter narrows the side list. Overlays are unaffected.
func (c *Controller) SetFilter(filter StatusFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = filter
}

// Filter returns the active status filter.
func (c *Controller) Filter() StatusFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Reset clears the selection and restores the all-statuses filter. Called
// when the underlying document identity changes.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.filter = FilterAll
}
