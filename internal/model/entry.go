package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes the two record families an entry can come from.
type EntryKind string

// Entry kinds.
const (
	KindTransaction EntryKind = "transaction"
	KindDuplicate   EntryKind = "duplicate"
)

// EntryID identifies an entry uniquely across both record families within a
// document.
type EntryID struct {
	Kind EntryKind
	Num  int64
}

// String renders the identity in the "tx-42" / "dup-7" form used for
// logging and cross-component wiring.
func (id EntryID) String() string {
	if id.Kind == KindDuplicate {
		return fmt.Sprintf("dup-%d", id.Num)
	}
	return fmt.Sprintf("tx-%d", id.Num)
}

// TransactionID builds the identity of a transaction entry.
func TransactionID(num int64) EntryID {
	return EntryID{Kind: KindTransaction, Num: num}
}

// DuplicateID builds the identity of a duplicate entry.
func DuplicateID(num int64) EntryID {
	return EntryID{Kind: KindDuplicate, Num: num}
}

// AnchorableEntry is the unit the anchoring engine reasons about: one
// normalized transaction or duplicate. Entries are constructed once per
// viewer load and never mutated afterwards.
type AnchorableEntry struct {
	TranDate      time.Time
	Narrative     string
	ReferenceCode string
	Label         string
	Phones        []string
	Credit        decimal.Decimal
	Debit         decimal.Decimal
	ID            EntryID
	Status        Status
	PageNumber    *int
	RowIndex      *int
}

// HasPage reports whether the entry carries a page hint. Entries without one
// are never attempted against any page.
func (e *AnchorableEntry) HasPage() bool {
	return e.PageNumber != nil
}

// Amount returns the displayed amount: credit when non-zero, else debit.
func (e *AnchorableEntry) Amount() decimal.Decimal {
	if !e.Credit.IsZero() {
		return e.Credit
	}
	return e.Debit
}
