package model

// MatchOutcome is the tri-state anchoring result for one entry.
type MatchOutcome int

// Match outcomes. OutcomeUnknown is reserved for entries that never had a
// page hint; entries with a page always resolve to matched or unmatched
// after their page renders.
const (
	OutcomeUnknown MatchOutcome = iota
	OutcomeMatched
	OutcomeUnmatched
)

// String implements fmt.Stringer for log output.
func (o MatchOutcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned rectangle in the page surface's coordinate space.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Overlay is an ephemeral marker descriptor, recomputed in full on every
// render pass and consumed by the rendering surface.
type Overlay struct {
	Label  string
	ID     EntryID
	Status Status
	Top    float64
	Left   float64
	Width  float64
}
