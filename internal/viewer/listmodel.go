package viewer

import (
	"sort"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/registry"
)

// ListItem is one side-panel row: the entry plus its current anchoring
// state.
type ListItem struct {
	Entry      model.AnchorableEntry
	Outcome    model.MatchOutcome
	HasOutcome bool
}

// NotHighlighted reports whether the row should carry the "not highlighted"
// indicator: the entry has a page but its last render pass found no anchor.
func (it ListItem) NotHighlighted() bool {
	return it.Entry.HasPage() && it.HasOutcome && it.Outcome == model.OutcomeUnmatched
}

// LacksPage reports whether the row should carry the "page metadata
// unavailable" indicator.
func (it ListItem) LacksPage() bool {
	return !it.Entry.HasPage()
}

// BuildList produces the ordered, filtered side-panel rows: sorted by status
// priority, then transaction date, preserving input order for ties.
func BuildList(entries []model.AnchorableEntry, reg *registry.Registry, filter StatusFilter) []ListItem {
	items := make([]ListItem, 0, len(entries))
	for _, entry := range entries {
		if !filter.Allows(entry.Status) {
			continue
		}
		outcome, ok := reg.Outcome(entry.ID)
		items = append(items, ListItem{Entry: entry, Outcome: outcome, HasOutcome: ok})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i].Entry, &items[j].Entry
		if pa, pb := a.Status.Priority(), b.Status.Priority(); pa != pb {
			return pa < pb
		}
		return a.TranDate.Before(b.TranDate)
	})
	return items
}

// StatusCounts tallies entries per status for the filter legend.
func StatusCounts(entries []model.AnchorableEntry) map[model.Status]int {
	counts := make(map[model.Status]int, len(model.StatusOrder))
	for _, entry := range entries {
		counts[entry.Status]++
	}
	return counts
}
