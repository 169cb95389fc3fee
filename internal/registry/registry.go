// Package registry tracks the per-session anchoring outcome of every entry.
package registry

import (
	"sync"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Registry maps entry identities to their tri-state match outcome. One
// registry serves one viewer session; loading a new document tears it down
// and builds a fresh one.
type Registry struct {
	outcomes map[model.EntryID]model.MatchOutcome
	mu       sync.RWMutex
}

// Counts aggregates outcomes for the summary/filter UI.
type Counts struct {
	Matched   int
	Unmatched int
	Unknown   int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{outcomes: make(map[model.EntryID]model.MatchOutcome)}
}

// MarkUnknown records the unknown outcome for entries that lack page
// metadata. Called once at document load; these entries are never revisited.
func (r *Registry) MarkUnknown(ids ...model.EntryID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.outcomes[id] = model.OutcomeUnknown
	}
}

// Apply records the outcomes of one page's render pass, replacing any
// outcomes from that page's previous pass.
func (r *Registry) Apply(outcomes map[model.EntryID]model.MatchOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, outcome := range outcomes {
		r.outcomes[id] = outcome
	}
}

// Outcome returns the recorded outcome for an entry. ok is false when the
// entry's page has not completed a render pass yet.
func (r *Registry) Outcome(id model.EntryID) (model.MatchOutcome, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	outcome, ok := r.outcomes[id]
	return outcome, ok
}

// Counts tallies the recorded outcomes.
func (r *Registry) Counts() Counts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c Counts
	for _, outcome := range r.outcomes {
		switch outcome {
		case model.OutcomeMatched:
			c.Matched++
		case model.OutcomeUnmatched:
			c.Unmatched++
		case model.OutcomeUnknown:
			c.Unknown++
		}
	}
	return c
}

// Len returns the number of entries with a recorded outcome.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.outcomes)
}

// Reset drops all recorded outcomes.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = make(map[model.EntryID]model.MatchOutcome)
}
