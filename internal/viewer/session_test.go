package viewer

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// stubRenderer is a scriptable rendering surface: tests swap the fragment
// set between passes to simulate re-renders.
type stubRenderer struct {
	fragments map[int][]anchor.Fragment
	zoom      float64
	zoomCalls int
	mu        sync.Mutex
}

func newStubRenderer() *stubRenderer {
	return &stubRenderer{fragments: make(map[int][]anchor.Fragment), zoom: 1.0}
}

func (r *stubRenderer) PageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fragments)
}

func (r *stubRenderer) Fragments(page int) []anchor.Fragment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fragments[page]
}

func (r *stubRenderer) SetZoom(factor float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zoom = factor
	r.zoomCalls++
}

func (r *stubRenderer) setFragments(page int, frags []anchor.Fragment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragments[page] = frags
}

func textFragment(text string, top float64) anchor.Fragment {
	return anchor.Fragment{
		Text:   text,
		Bounds: model.Rect{Top: top, Left: 24, Width: 200, Height: 16},
	}
}

func testPayload() *model.StatementPayload {
	page1 := 1
	page2 := 2
	return &model.StatementPayload{
		Statement: model.StatementDocument{ID: 1, Filename: "june.pdf"},
		Transactions: []model.TransactionRecord{
			{
				ID:               1,
				ReferenceCode:    "FT24001ABC",
				Narrative:        "SALARY PAYMENT FOR THE MONTH OF JUNE",
				Credit:           decimal.RequireFromString("12345.60"),
				AssignmentStatus: "auto_assigned",
				Metadata:         model.RecordMetadata{PageNumber: &page1},
			},
			{
				ID:        2,
				Narrative: "POS PURCHASE NAIVAS SUPERMARKET",
				Debit:     decimal.RequireFromString("1250"),
				Metadata:  model.RecordMetadata{PageNumber: &page2},
			},
			{
				ID:        3,
				Narrative: "NO PAGE HINT AT ALL",
			},
		},
		Duplicates: []model.DuplicateRecord{
			{ID: 1, NarrativeSnapshot: "POS PURCHASE NAIVAS SUPERMARKET", PageNumber: &page2},
		},
	}
}

func fastConfig() Config {
	return Config{Debounce: 5 * time.Millisecond, Zoom: DefaultZoomConfig()}
}

func TestSessionAnchorsOnRecompute(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("02/06/2024  FT24001ABC  SALARY", 120),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeNow(1)

	overlays := s.Overlays(1)
	require.Len(t, overlays, 1)
	assert.Equal(t, model.TransactionID(1), overlays[0].ID)
	assert.Equal(t, model.StatusAutoAssigned, overlays[0].Status)

	outcome, ok := s.Registry().Outcome(model.TransactionID(1))
	require.True(t, ok)
	assert.Equal(t, model.OutcomeMatched, outcome)

	claims := s.Claims(1)
	require.Len(t, claims, 1)
	assert.Equal(t, model.TransactionID(1), claims[0].EntryID)
}

func TestSessionClearsMarksBeforeRecompute(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeNow(1)
	require.Len(t, s.Overlays(1), 1)

	// The page re-renders with text the entry no longer appears in.
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("COMPLETELY DIFFERENT CONTENT", 40),
	})
	s.RecomputeNow(1)

	assert.Empty(t, s.Overlays(1))
	assert.Empty(t, s.Claims(1))

	outcome, ok := s.Registry().Outcome(model.TransactionID(1))
	require.True(t, ok)
	assert.Equal(t, model.OutcomeUnmatched, outcome)
}

func TestSessionFallbackEntriesStayUnknown(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("NO PAGE HINT AT ALL", 40),
	})
	renderer.setFragments(2, []anchor.Fragment{
		textFragment("NO PAGE HINT AT ALL", 40),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeAllNow()

	// tx-3 has no page hint: even though its narrative is present on both
	// pages, it is never attempted.
	outcome, ok := s.Registry().Outcome(model.TransactionID(3))
	require.True(t, ok)
	assert.Equal(t, model.OutcomeUnknown, outcome)

	require.Len(t, s.FallbackEntries(), 1)
	assert.Equal(t, model.TransactionID(3), s.FallbackEntries()[0].ID)
}

func TestSessionDebouncesRenderSignals(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	s := NewSession(testPayload(), renderer, fastConfig())

	// A burst of render signals collapses into one recompute after the
	// debounce window.
	for i := 0; i < 5; i++ {
		s.RenderCompleted(1)
	}

	assert.Eventually(t, func() bool {
		return len(s.Overlays(1)) == 1
	}, time.Second, time.Millisecond)
}

func TestSessionRetriesEmptyFragmentsOnce(t *testing.T) {
	renderer := newStubRenderer()

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RenderCompleted(1)

	// First pass sees no fragments and re-arms; the surface lays out before
	// the retry fires.
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	assert.Eventually(t, func() bool {
		return len(s.Overlays(1)) == 1
	}, time.Second, time.Millisecond)
}

func TestSessionEmptyFragmentsSecondPassIsUnmatched(t *testing.T) {
	renderer := newStubRenderer()

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RenderCompleted(1)

	// The surface never lays out: after the single retry the entry is
	// declared unmatched rather than retried forever.
	assert.Eventually(t, func() bool {
		outcome, ok := s.Registry().Outcome(model.TransactionID(1))
		return ok && outcome == model.OutcomeUnmatched
	}, time.Second, time.Millisecond)
}

func TestSessionLoadDocumentAbandonsPendingRecompute(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	s := NewSession(testPayload(), renderer, Config{Debounce: 50 * time.Millisecond, Zoom: DefaultZoomConfig()})
	s.RenderCompleted(1)

	next := &model.StatementPayload{
		Statement: model.StatementDocument{ID: 2, Filename: "july.pdf"},
	}
	s.LoadDocument(next, newStubRenderer())

	time.Sleep(150 * time.Millisecond)

	assert.Empty(t, s.Overlays(1))
	assert.Equal(t, 0, s.Registry().Len())
	assert.Equal(t, int64(2), s.Document().ID)
}

func TestSessionLoadDocumentResetsSelectionAndZoom(t *testing.T) {
	renderer := newStubRenderer()
	s := NewSession(testPayload(), renderer, fastConfig())

	s.Controller().Select(model.TransactionID(1))
	s.Controller().SetFilter(FilterFor(model.StatusDraft))
	s.SetZoom(1.6)

	s.LoadDocument(testPayload(), newStubRenderer())

	_, ok := s.Controller().Selected()
	assert.False(t, ok)
	assert.Equal(t, FilterAll, s.Controller().Filter())
	assert.Equal(t, 1.0, s.Zoom())
}

func TestSessionZoomPropagatesToRenderer(t *testing.T) {
	renderer := newStubRenderer()
	s := NewSession(testPayload(), renderer, fastConfig())

	assert.Equal(t, 1.2, s.ZoomIn())
	assert.Equal(t, 1.0, s.ZoomReset())
	assert.Equal(t, 0.8, s.ZoomOut())
	assert.Equal(t, 2.0, s.SetZoom(99))

	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	assert.Equal(t, 2.0, renderer.zoom)
	assert.Equal(t, 4, renderer.zoomCalls)
}

func TestSessionFilterNarrowsListNotOverlays(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeNow(1)

	s.Controller().SetFilter(FilterFor(model.StatusDuplicate))

	items := s.Entries()
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusDuplicate, items[0].Entry.Status)

	// Overlays ignore the list filter.
	assert.Len(t, s.Overlays(1), 1)
}

func TestSessionOverlayFor(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeNow(1)

	ov, page, ok := s.OverlayFor(model.TransactionID(1))
	require.True(t, ok)
	assert.Equal(t, 1, page)
	assert.Equal(t, model.TransactionID(1), ov.ID)

	_, _, ok = s.OverlayFor(model.TransactionID(2))
	assert.False(t, ok)
}

func TestSessionSummary(t *testing.T) {
	renderer := newStubRenderer()
	renderer.setFragments(1, []anchor.Fragment{
		textFragment("FT24001ABC", 120),
	})
	renderer.setFragments(2, []anchor.Fragment{
		textFragment("NOTHING THE ENTRIES MENTION", 40),
	})

	s := NewSession(testPayload(), renderer, fastConfig())
	s.RecomputeNow(1)
	s.RecomputeNow(2)

	summary := s.Summary()
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.LackingPage)
	assert.Equal(t, 1, summary.Outcomes.Matched)
	assert.Equal(t, 2, summary.Outcomes.Unmatched)
	assert.Equal(t, 1, summary.Outcomes.Unknown)
	assert.Equal(t, 1, summary.ByStatus[model.StatusAutoAssigned])
	assert.Equal(t, 2, summary.ByStatus[model.StatusUnassigned])
	assert.Equal(t, 1, summary.ByStatus[model.StatusDuplicate])
}
