package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementDocument describes an uploaded statement as returned by the
// document collaborator.
type StatementDocument struct {
	UploadedAt  time.Time `json:"uploaded_at"`
	Filename    string    `json:"filename"`
	DocumentURL string    `json:"document_url"`
	ID          int64     `json:"id"`
}

// RecordMetadata holds the loosely structured extras a parser attaches to a
// record. Only the fields the viewer consumes are modeled.
type RecordMetadata struct {
	Phones     []string `json:"phones,omitempty"`
	PageNumber *int     `json:"page_number,omitempty"`
	RowIndex   *int     `json:"row_index,omitempty"`
}

// TransactionRecord is a parsed statement transaction as delivered by the
// data source. Amount fields may be zero when parsing failed; the record is
// still usable.
type TransactionRecord struct {
	TranDate         time.Time       `json:"tran_date"`
	Narrative        string          `json:"narrative"`
	ReferenceCode    string          `json:"reference_code,omitempty"`
	AssignmentStatus string          `json:"assignment_status,omitempty"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Metadata         RecordMetadata  `json:"metadata"`
	Credit           decimal.Decimal `json:"credit"`
	Debit            decimal.Decimal `json:"debit"`
	ID               int64           `json:"id"`
	IsArchived       bool            `json:"is_archived"`
}

// DuplicateRecord is a flagged duplicate of a previously ingested
// transaction. It carries a snapshot of the original narrative because the
// original row may since have been edited or archived.
type DuplicateRecord struct {
	NarrativeSnapshot     string          `json:"narrative_snapshot"`
	ReferenceCode         string          `json:"reference_code,omitempty"`
	DuplicateReason       string          `json:"duplicate_reason,omitempty"`
	Metadata              RecordMetadata  `json:"metadata"`
	Credit                decimal.Decimal `json:"credit"`
	Debit                 decimal.Decimal `json:"debit"`
	ID                    int64           `json:"id"`
	OriginalTransactionID int64           `json:"original_transaction_id,omitempty"`
	PageNumber            *int            `json:"page_number,omitempty"`
}

// Metrics summarizes a statement document for the dashboard cards.
type Metrics struct {
	AssignmentBreakdown map[Status]int  `json:"assignment_breakdown"`
	TotalCredit         decimal.Decimal `json:"total_credit"`
	TotalDebit          decimal.Decimal `json:"total_debit"`
	TotalTransactions   int             `json:"total_transactions"`
	DuplicateCount      int             `json:"duplicate_count"`
	ArchivedCount       int             `json:"archived_count"`
}

// StatementPayload is the complete document payload the viewer is loaded
// with: descriptor, records, metrics, and the raw page text consumed by the
// rendering surface.
type StatementPayload struct {
	Statement    StatementDocument   `json:"statement"`
	Metrics      Metrics             `json:"metrics"`
	Transactions []TransactionRecord `json:"transactions"`
	Duplicates   []DuplicateRecord   `json:"duplicates"`
	Pages        []PageText          `json:"pages,omitempty"`
}

// PageText is the raw text content of one statement page, one string per
// printed line. The renderer turns these into positioned fragments.
type PageText struct {
	Lines      []string `json:"lines"`
	PageNumber int      `json:"page_number"`
}
