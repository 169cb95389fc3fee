// Package normalize converts raw transaction and duplicate records into the
// uniform entries the anchoring engine consumes.
package normalize

import "github.com/ledgerlens/ledgerlens/internal/model"

// Fallback labels for entries with no counterparty.
const (
	unassignedLabel = "Unassigned"
	duplicateLabel  = "Duplicate"
)

// Entries normalizes the full record set into one ordered entry list:
// transactions first in input order, then duplicates in input order.
// Malformed records are tolerated, never dropped; a record that cannot
// render detail text still appears as an unmatched placeholder.
func Entries(transactions []model.TransactionRecord, duplicates []model.DuplicateRecord) []model.AnchorableEntry {
	entries := make([]model.AnchorableEntry, 0, len(transactions)+len(duplicates))
	for i := range transactions {
		entries = append(entries, Transaction(&transactions[i]))
	}
	for i := range duplicates {
		entries = append(entries, Duplicate(&duplicates[i]))
	}
	return entries
}

// Transaction normalizes a single transaction record.
func Transaction(tx *model.TransactionRecord) model.AnchorableEntry {
	label := tx.CounterpartyName
	if label == "" {
		label = unassignedLabel
	}
	return model.AnchorableEntry{
		ID:            model.TransactionID(tx.ID),
		Status:        transactionStatus(tx),
		PageNumber:    tx.Metadata.PageNumber,
		RowIndex:      tx.Metadata.RowIndex,
		Label:         label,
		Narrative:     tx.Narrative,
		ReferenceCode: tx.ReferenceCode,
		Credit:        tx.Credit,
		Debit:         tx.Debit,
		TranDate:      tx.TranDate,
		Phones:        tx.Metadata.Phones,
	}
}

// Duplicate normalizes a single duplicate record. Duplicates always classify
// as duplicate regardless of any assignment-like fields they carry.
func Duplicate(dup *model.DuplicateRecord) model.AnchorableEntry {
	page := dup.PageNumber
	if page == nil {
		page = dup.Metadata.PageNumber
	}
	return model.AnchorableEntry{
		ID:            model.DuplicateID(dup.ID),
		Status:        model.StatusDuplicate,
		PageNumber:    page,
		RowIndex:      dup.Metadata.RowIndex,
		Label:         duplicateLabel,
		Narrative:     dup.NarrativeSnapshot,
		ReferenceCode: dup.ReferenceCode,
		Credit:        dup.Credit,
		Debit:         dup.Debit,
		Phones:        dup.Metadata.Phones,
	}
}

// transactionStatus derives the display status for a transaction. Archival
// wins over assignment state; unrecognized assignment values fall back to
// unassigned.
func transactionStatus(tx *model.TransactionRecord) model.Status {
	if tx.IsArchived {
		return model.StatusArchived
	}
	switch model.Status(tx.AssignmentStatus) {
	case model.StatusAutoAssigned:
		return model.StatusAutoAssigned
	case model.StatusManualAssigned:
		return model.StatusManualAssigned
	case model.StatusDraft:
		return model.StatusDraft
	default:
		return model.StatusUnassigned
	}
}
