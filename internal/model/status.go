// Package model defines the core domain models used throughout the application.
package model

// Status classifies an entry for display and filtering. It is derived once
// when a record is normalized and never recomputed afterwards.
type Status string

// Status constants, in display priority order.
const (
	StatusAutoAssigned   Status = "auto_assigned"
	StatusManualAssigned Status = "manual_assigned"
	StatusDraft          Status = "draft"
	StatusUnassigned     Status = "unassigned"
	StatusArchived       Status = "archived"
	StatusDuplicate      Status = "duplicate"
)

// StatusOrder is the display priority used when sorting the entry list.
var StatusOrder = []Status{
	StatusAutoAssigned,
	StatusManualAssigned,
	StatusDraft,
	StatusUnassigned,
	StatusArchived,
	StatusDuplicate,
}

// StatusMeta carries the presentation attributes for a status.
type StatusMeta struct {
	Label string
	Color string
}

// StatusMetadata maps each status to its label and marker color.
var StatusMetadata = map[Status]StatusMeta{
	StatusAutoAssigned:   {Label: "Auto-assigned", Color: "green"},
	StatusManualAssigned: {Label: "Manual", Color: "blue"},
	StatusDraft:          {Label: "Draft", Color: "yellow"},
	StatusUnassigned:     {Label: "Unassigned", Color: "gray"},
	StatusArchived:       {Label: "Archived", Color: "slate"},
	StatusDuplicate:      {Label: "Duplicate", Color: "red"},
}

// Priority returns the sort rank of a status. Unknown statuses sort last.
func (s Status) Priority() int {
	for i, known := range StatusOrder {
		if s == known {
			return i
		}
	}
	return len(StatusOrder)
}

// Valid reports whether s is one of the six known status keys.
func (s Status) Valid() bool {
	_, ok := StatusMetadata[s]
	return ok
}

// Label returns the human-readable label for the status, falling back to the
// raw key for unknown values.
func (s Status) Label() string {
	if meta, ok := StatusMetadata[s]; ok {
		return meta.Label
	}
	return string(s)
}
