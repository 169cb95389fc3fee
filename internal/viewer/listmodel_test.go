package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/registry"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func listEntries() []model.AnchorableEntry {
	page := 1
	return []model.AnchorableEntry{
		{ID: model.TransactionID(1), Status: model.StatusDraft, TranDate: day(10), PageNumber: &page},
		{ID: model.TransactionID(2), Status: model.StatusAutoAssigned, TranDate: day(12), PageNumber: &page},
		{ID: model.TransactionID(3), Status: model.StatusAutoAssigned, TranDate: day(5), PageNumber: &page},
		{ID: model.DuplicateID(4), Status: model.StatusDuplicate, TranDate: day(1)},
		{ID: model.TransactionID(5), Status: model.StatusUnassigned, TranDate: day(3), PageNumber: &page},
	}
}

func TestBuildListSortsByStatusPriorityThenDate(t *testing.T) {
	items := BuildList(listEntries(), registry.New(), FilterAll)

	require.Len(t, items, 5)
	got := make([]model.EntryID, len(items))
	for i, item := range items {
		got[i] = item.Entry.ID
	}
	want := []model.EntryID{
		model.TransactionID(3), // auto assigned, June 5
		model.TransactionID(2), // auto assigned, June 12
		model.TransactionID(1), // draft
		model.TransactionID(5), // unassigned
		model.DuplicateID(4),   // duplicate sorts last
	}
	assert.Equal(t, want, got)
}

func TestBuildListFilter(t *testing.T) {
	items := BuildList(listEntries(), registry.New(), FilterFor(model.StatusAutoAssigned))

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, model.StatusAutoAssigned, item.Entry.Status)
	}
}

func TestBuildListCarriesOutcomes(t *testing.T) {
	reg := registry.New()
	reg.Apply(map[model.EntryID]model.MatchOutcome{
		model.TransactionID(1): model.OutcomeUnmatched,
		model.TransactionID(2): model.OutcomeMatched,
	})

	items := BuildList(listEntries(), reg, FilterAll)

	byID := make(map[model.EntryID]ListItem, len(items))
	for _, item := range items {
		byID[item.Entry.ID] = item
	}

	assert.True(t, byID[model.TransactionID(1)].NotHighlighted())
	assert.False(t, byID[model.TransactionID(2)].NotHighlighted())

	// No render pass has touched tx-3 yet.
	assert.False(t, byID[model.TransactionID(3)].HasOutcome)
	assert.False(t, byID[model.TransactionID(3)].NotHighlighted())

	// dup-4 has no page hint: it lacks a page but is never "not highlighted".
	assert.True(t, byID[model.DuplicateID(4)].LacksPage())
	assert.False(t, byID[model.DuplicateID(4)].NotHighlighted())
}

func TestBuildListStableForEqualKeys(t *testing.T) {
	page := 1
	entries := []model.AnchorableEntry{
		{ID: model.TransactionID(1), Status: model.StatusDraft, TranDate: day(7), PageNumber: &page},
		{ID: model.TransactionID(2), Status: model.StatusDraft, TranDate: day(7), PageNumber: &page},
	}

	items := BuildList(entries, registry.New(), FilterAll)

	require.Len(t, items, 2)
	assert.Equal(t, model.TransactionID(1), items[0].Entry.ID)
	assert.Equal(t, model.TransactionID(2), items[1].Entry.ID)
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(listEntries())

	assert.Equal(t, 2, counts[model.StatusAutoAssigned])
	assert.Equal(t, 1, counts[model.StatusDraft])
	assert.Equal(t, 1, counts[model.StatusUnassigned])
	assert.Equal(t, 1, counts[model.StatusDuplicate])
	assert.Equal(t, 0, counts[model.StatusArchived])
}
