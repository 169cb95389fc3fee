package anchor

import (
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/token"
)

// Tokens shorter than minTokenLen normalized characters are never attempted;
// they are too generic to anchor on.
const minTokenLen = 3

// Match records a successful anchoring of one entry onto one fragment for
// the current render pass.
type Match struct {
	Token         string
	EntryID       model.EntryID
	Status        model.Status
	Bounds        model.Rect
	FragmentIndex int
}

// Claim marks a fragment as the anchor for an entry. Claims are the
// transient, engine-owned equivalent of highlighting the fragment's text;
// they are rebuilt from scratch every pass and never persisted.
type Claim struct {
	EntryID model.EntryID
	Status  model.Status
}

// PassResult is the complete output of matching one page in one render
// pass. Outcomes contains an entry for every input entry.
type PassResult struct {
	Outcomes map[model.EntryID]model.MatchOutcome
	Claims   map[int]Claim
	Matches  []Match
}

// MatchPage anchors the page's entries against the page's current fragments.
// It is a pure function of its inputs: re-running it over the same entries
// and fragments yields the same result.
//
// Entries are processed in page order. For each entry the extracted tokens
// are tried in order; the first fragment whose normalized text contains the
// normalized token ends the search for that entry. A fragment claimed by an
// earlier entry stays in the candidate pool for later entries, but its claim
// is not overwritten.
func MatchPage(entries []model.AnchorableEntry, fragments []Fragment) *PassResult {
	result := &PassResult{
		Outcomes: make(map[model.EntryID]model.MatchOutcome, len(entries)),
		Claims:   make(map[int]Claim),
	}

	// Normalize fragment text once per pass, amortized across all entries.
	normalized := make([]string, len(fragments))
	for i, frag := range fragments {
		normalized[i] = NormalizeText(frag.Text)
	}

	for i := range entries {
		entry := &entries[i]
		match, ok := matchEntry(entry, fragments, normalized)
		if !ok {
			result.Outcomes[entry.ID] = model.OutcomeUnmatched
			continue
		}

		result.Outcomes[entry.ID] = model.OutcomeMatched
		result.Matches = append(result.Matches, match)
		if _, claimed := result.Claims[match.FragmentIndex]; !claimed {
			result.Claims[match.FragmentIndex] = Claim{EntryID: entry.ID, Status: entry.Status}
		}
	}

	return result
}

// matchEntry tries the entry's tokens in order against the normalized
// fragment text and stops at the first hit.
func matchEntry(entry *model.AnchorableEntry, fragments []Fragment, normalized []string) (Match, bool) {
	for _, tok := range token.Extract(entry) {
		needle := NormalizeText(tok)
		if len(needle) < minTokenLen {
			continue
		}
		for i, haystack := range normalized {
			if strings.Contains(haystack, needle) {
				return Match{
					EntryID:       entry.ID,
					Status:        entry.Status,
					FragmentIndex: i,
					Bounds:        fragments[i].Bounds,
					Token:         tok,
				}, true
			}
		}
	}
	return Match{}, false
}
