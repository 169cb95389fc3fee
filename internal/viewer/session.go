// Package viewer orchestrates one statement viewing session: grouping,
// anchoring, overlay projection, match-state bookkeeping, and the selection
// and filter model on top.
package viewer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/normalize"
	"github.com/ledgerlens/ledgerlens/internal/overlay"
	"github.com/ledgerlens/ledgerlens/internal/pageindex"
	"github.com/ledgerlens/ledgerlens/internal/registry"
	"github.com/ledgerlens/ledgerlens/internal/service"
)

// DefaultDebounce is how long the session waits after a render-complete or
// resize signal before measuring fragments. Measuring immediately yields
// zero-sized or stale rectangles while the surface is still laying out.
const DefaultDebounce = 50 * time.Millisecond

// Config holds session tuning knobs.
type Config struct {
	Debounce time.Duration
	Zoom     ZoomConfig
}

// DefaultConfig returns the stock session configuration.
func DefaultConfig() Config {
	return Config{Debounce: DefaultDebounce, Zoom: DefaultZoomConfig()}
}

// SummaryCounts aggregates the registry and grouping state for the UI
// header.
type SummaryCounts struct {
	ByStatus    map[model.Status]int
	Outcomes    registry.Counts
	Total       int
	LackingPage int
}

// Session owns the engine state for one loaded document. All matching work
// runs inside the session's lock; debounce timers fire on their own
// goroutines but re-enter through the same lock, and a generation counter
// invalidates timers that outlive the document they were scheduled for.
type Session struct {
	cfg        Config
	doc        model.StatementDocument
	metrics    model.Metrics
	renderer   service.PageRenderer
	controller *Controller
	reg        *registry.Registry
	index      *pageindex.Index
	entries    []model.AnchorableEntry
	overlays   map[int][]model.Overlay
	claims     map[int]map[int]anchor.Claim
	timers     map[int]*time.Timer
	retried    map[int]bool
	zoom       float64
	generation int
	mu         sync.Mutex
}

// NewSession builds a session for a freshly loaded document payload.
func NewSession(payload *model.StatementPayload, renderer service.PageRenderer, cfg Config) *Session {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Zoom == (ZoomConfig{}) {
		cfg.Zoom = DefaultZoomConfig()
	}
	s := &Session{
		cfg:        cfg,
		controller: NewController(nil),
		reg:        registry.New(),
		overlays:   make(map[int][]model.Overlay),
		claims:     make(map[int]map[int]anchor.Claim),
		timers:     make(map[int]*time.Timer),
		retried:    make(map[int]bool),
		zoom:       1.0,
	}
	s.install(payload, renderer)
	return s
}

// install wires a payload into the session. Caller must not hold the lock.
func (s *Session) install(payload *model.StatementPayload, renderer service.PageRenderer) {
	entries := normalize.Entries(payload.Transactions, payload.Duplicates)
	index := pageindex.Build(entries)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = payload.Statement
	s.metrics = payload.Metrics
	s.renderer = renderer
	s.entries = entries
	s.index = index

	// Fallback entries get their terminal outcome once and are never
	// attempted against any page.
	for _, entry := range index.Fallback {
		s.reg.MarkUnknown(entry.ID)
	}

	slog.Info("statement session ready",
		"document", s.doc.ID,
		"entries", len(entries),
		"pages", len(index.Pages()),
		"no_page_hint", len(index.Fallback))
}

// LoadDocument replaces the session's document. Any pending debounced
// recompute belongs to the old document and is abandoned; registry,
// overlays, and selection are rebuilt from scratch.
func (s *Session) LoadDocument(payload *model.StatementPayload, renderer service.PageRenderer) {
	s.mu.Lock()
	s.generation++
	for page, timer := range s.timers {
		timer.Stop()
		delete(s.timers, page)
	}
	s.reg.Reset()
	s.overlays = make(map[int][]model.Overlay)
	s.claims = make(map[int]map[int]anchor.Claim)
	s.retried = make(map[int]bool)
	s.zoom = 1.0
	s.mu.Unlock()

	s.controller.Reset()
	s.install(payload, renderer)
}

// Document returns the loaded document descriptor.
func (s *Session) Document() model.StatementDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Metrics returns the payload's document metrics.
func (s *Session) Metrics() model.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Controller exposes the selection and filter state.
func (s *Session) Controller() *Controller {
	return s.controller
}

// Registry exposes the match-state registry for read-only consumers.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

// PageEntries returns the entries grouped to a page, in input order.
func (s *Session) PageEntries(page int) []model.AnchorableEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Page(page)
}

// Pages returns the page numbers that have grouped entries, ascending.
func (s *Session) Pages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Pages()
}

// FallbackEntries returns the entries lacking page metadata.
func (s *Session) FallbackEntries() []model.AnchorableEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Fallback
}

// RenderCompleted signals that a page finished a render pass. The recompute
// is debounced so the surface can settle before measurement.
func (s *Session) RenderCompleted(page int) {
	s.schedule(page)
}

// Resized signals a geometry change affecting every rendered page.
func (s *Session) Resized() {
	for _, page := range s.Pages() {
		s.schedule(page)
	}
}

// Zoom returns the current zoom factor.
func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// ZoomIn steps the zoom up and schedules a recompute of every page.
func (s *Session) ZoomIn() float64 { return s.setZoom(s.cfg.Zoom.In(s.Zoom())) }

// ZoomOut steps the zoom down and schedules a recompute of every page.
func (s *Session) ZoomOut() float64 { return s.setZoom(s.cfg.Zoom.Out(s.Zoom())) }

// ZoomReset restores 1.0 and schedules a recompute of every page.
func (s *Session) ZoomReset() float64 { return s.setZoom(1.0) }

// SetZoom applies an arbitrary factor, clamped to the configured range.
func (s *Session) SetZoom(factor float64) float64 {
	return s.setZoom(s.cfg.Zoom.Clamp(factor))
}

func (s *Session) setZoom(factor float64) float64 {
	s.mu.Lock()
	changed := s.zoom != factor
	s.zoom = factor
	renderer := s.renderer
	s.mu.Unlock()

	if changed {
		renderer.SetZoom(factor)
		s.Resized()
	}
	return factor
}

// schedule arms (or re-arms) the page's debounce timer. The generation at
// scheduling time travels with the callback; a document swap bumps the
// generation so stale callbacks become no-ops.
func (s *Session) schedule(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.generation
	if timer, ok := s.timers[page]; ok {
		timer.Stop()
	}
	s.timers[page] = time.AfterFunc(s.cfg.Debounce, func() {
		s.recompute(page, gen)
	})
}

// recompute runs one full clear-then-match cycle for a page. Clearing and
// recomputation happen inside a single critical section, so a reader can
// never observe marks from the previous pass alongside results of the new
// one.
func (s *Session) recompute(page int, gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.Debug("dropping stale recompute", "page", page)
		return
	}
	delete(s.timers, page)

	// Clear before recompute: stale marks must never survive a pass.
	delete(s.overlays, page)
	delete(s.claims, page)

	entries := s.index.Page(page)
	if len(entries) == 0 {
		return
	}

	fragments := s.renderer.Fragments(page)
	if len(fragments) == 0 && !s.retried[page] {
		// Surface not laid out yet; retry once after another debounce
		// window before declaring the page unmatched.
		s.retried[page] = true
		s.timers[page] = time.AfterFunc(s.cfg.Debounce, func() {
			s.recompute(page, gen)
		})
		return
	}
	s.retried[page] = false

	result := anchor.MatchPage(entries, fragments)
	s.overlays[page] = overlay.Project(result.Matches)
	s.claims[page] = result.Claims
	s.reg.Apply(result.Outcomes)

	slog.Debug("page recomputed",
		"page", page,
		"entries", len(entries),
		"fragments", len(fragments),
		"matched", len(result.Matches))
}

// RecomputeNow runs the page's clear-then-match cycle synchronously,
// bypassing the debounce. Used by batch commands and tests.
func (s *Session) RecomputeNow(page int) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	s.recompute(page, gen)
}

// RecomputeAllNow synchronously recomputes every page with grouped entries.
func (s *Session) RecomputeAllNow() {
	for _, page := range s.Pages() {
		s.RecomputeNow(page)
	}
}

// Overlays returns the current overlay descriptors for a page.
func (s *Session) Overlays(page int) []model.Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Overlay, len(s.overlays[page]))
	copy(out, s.overlays[page])
	return out
}

// Claims returns the page's fragment claims, keyed by fragment index. The
// rendering surface uses these to color anchor text.
func (s *Session) Claims(page int) map[int]anchor.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]anchor.Claim, len(s.claims[page]))
	for idx, claim := range s.claims[page] {
		out[idx] = claim
	}
	return out
}

// OverlayFor locates the selected entry's overlay and its page.
func (s *Session) OverlayFor(id model.EntryID) (model.Overlay, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for page, overlays := range s.overlays {
		for _, ov := range overlays {
			if ov.ID == id {
				return ov, page, true
			}
		}
	}
	return model.Overlay{}, 0, false
}

// Entries returns the side-panel rows under the active filter.
func (s *Session) Entries() []ListItem {
	s.mu.Lock()
	entries := s.entries
	s.mu.Unlock()
	return BuildList(entries, s.reg, s.controller.Filter())
}

// AllEntries returns every normalized entry regardless of filter.
func (s *Session) AllEntries() []model.AnchorableEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries
}

// Summary aggregates registry outcomes and grouping state for the header.
func (s *Session) Summary() SummaryCounts {
	s.mu.Lock()
	entries := s.entries
	fallback := len(s.index.Fallback)
	s.mu.Unlock()

	return SummaryCounts{
		Total:       len(entries),
		LackingPage: fallback,
		Outcomes:    s.reg.Counts(),
		ByStatus:    StatusCounts(entries),
	}
}
