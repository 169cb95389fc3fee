// Package storage persists statement payloads and serves them back to the
// viewer as a document source.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.DocumentSource on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the statement database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Migrate creates the schema if it does not exist yet.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS statements (
			id INTEGER PRIMARY KEY,
			filename TEXT NOT NULL,
			document_url TEXT NOT NULL DEFAULT '',
			uploaded_at TIMESTAMP NOT NULL,
			total_credit TEXT NOT NULL DEFAULT '0',
			total_debit TEXT NOT NULL DEFAULT '0',
			total_transactions INTEGER NOT NULL DEFAULT 0,
			duplicate_count INTEGER NOT NULL DEFAULT 0,
			archived_count INTEGER NOT NULL DEFAULT 0,
			assignment_breakdown TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY,
			statement_id INTEGER NOT NULL REFERENCES statements(id),
			tran_date TIMESTAMP NOT NULL,
			narrative TEXT NOT NULL DEFAULT '',
			reference_code TEXT NOT NULL DEFAULT '',
			assignment_status TEXT NOT NULL DEFAULT '',
			counterparty_name TEXT NOT NULL DEFAULT '',
			credit TEXT NOT NULL DEFAULT '0',
			debit TEXT NOT NULL DEFAULT '0',
			is_archived INTEGER NOT NULL DEFAULT 0,
			page_number INTEGER,
			row_index INTEGER,
			phones TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS duplicates (
			id INTEGER PRIMARY KEY,
			statement_id INTEGER NOT NULL REFERENCES statements(id),
			narrative_snapshot TEXT NOT NULL DEFAULT '',
			reference_code TEXT NOT NULL DEFAULT '',
			duplicate_reason TEXT NOT NULL DEFAULT '',
			original_transaction_id INTEGER,
			credit TEXT NOT NULL DEFAULT '0',
			debit TEXT NOT NULL DEFAULT '0',
			page_number INTEGER,
			row_index INTEGER,
			phones TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			statement_id INTEGER NOT NULL REFERENCES statements(id),
			page_number INTEGER NOT NULL,
			lines TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (statement_id, page_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_statement ON transactions(statement_id)`,
		`CREATE INDEX IF NOT EXISTS idx_duplicates_statement ON duplicates(statement_id)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// SaveStatementPayload stores a complete payload, replacing any previous
// copy of the same statement.
func (s *SQLiteStore) SaveStatementPayload(ctx context.Context, payload *model.StatementPayload) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmtID := payload.Statement.ID
	for _, del := range []string{
		`DELETE FROM transactions WHERE statement_id = ?`,
		`DELETE FROM duplicates WHERE statement_id = ?`,
		`DELETE FROM pages WHERE statement_id = ?`,
		`DELETE FROM statements WHERE id = ?`,
	} {
		if _, err = tx.ExecContext(ctx, del, stmtID); err != nil {
			return fmt.Errorf("failed to clear previous statement rows: %w", err)
		}
	}

	breakdown, err := json.Marshal(payload.Metrics.AssignmentBreakdown)
	if err != nil {
		return fmt.Errorf("failed to encode assignment breakdown: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO statements (id, filename, document_url, uploaded_at,
			total_credit, total_debit, total_transactions, duplicate_count,
			archived_count, assignment_breakdown)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stmtID,
		payload.Statement.Filename,
		payload.Statement.DocumentURL,
		payload.Statement.UploadedAt,
		payload.Metrics.TotalCredit.String(),
		payload.Metrics.TotalDebit.String(),
		payload.Metrics.TotalTransactions,
		payload.Metrics.DuplicateCount,
		payload.Metrics.ArchivedCount,
		string(breakdown),
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}

	for i := range payload.Transactions {
		rec := &payload.Transactions[i]
		phones, perr := json.Marshal(rec.Metadata.Phones)
		if perr != nil {
			return fmt.Errorf("failed to encode phones: %w", perr)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (id, statement_id, tran_date, narrative,
				reference_code, assignment_status, counterparty_name, credit,
				debit, is_archived, page_number, row_index, phones)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, stmtID, rec.TranDate, rec.Narrative,
			rec.ReferenceCode, rec.AssignmentStatus, rec.CounterpartyName,
			rec.Credit.String(), rec.Debit.String(), rec.IsArchived,
			rec.Metadata.PageNumber, rec.Metadata.RowIndex, string(phones),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", rec.ID, err)
		}
	}

	for i := range payload.Duplicates {
		rec := &payload.Duplicates[i]
		phones, perr := json.Marshal(rec.Metadata.Phones)
		if perr != nil {
			return fmt.Errorf("failed to encode phones: %w", perr)
		}
		var original any
		if rec.OriginalTransactionID != 0 {
			original = rec.OriginalTransactionID
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO duplicates (id, statement_id, narrative_snapshot,
				reference_code, duplicate_reason, original_transaction_id,
				credit, debit, page_number, row_index, phones)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, stmtID, rec.NarrativeSnapshot,
			rec.ReferenceCode, rec.DuplicateReason, original,
			rec.Credit.String(), rec.Debit.String(),
			rec.PageNumber, rec.Metadata.RowIndex, string(phones),
		)
		if err != nil {
			return fmt.Errorf("failed to insert duplicate %d: %w", rec.ID, err)
		}
	}

	for _, page := range payload.Pages {
		lines, perr := json.Marshal(page.Lines)
		if perr != nil {
			return fmt.Errorf("failed to encode page lines: %w", perr)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO pages (statement_id, page_number, lines) VALUES (?, ?, ?)`,
			stmtID, page.PageNumber, string(lines),
		)
		if err != nil {
			return fmt.Errorf("failed to insert page %d: %w", page.PageNumber, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit statement payload: %w", err)
	}
	return nil
}

// GetStatementPayload loads a complete payload by statement id.
func (s *SQLiteStore) GetStatementPayload(ctx context.Context, documentID int64) (*model.StatementPayload, error) {
	payload := &model.StatementPayload{}

	var (
		totalCredit string
		totalDebit  string
		breakdown   string
		uploadedAt  time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, document_url, uploaded_at, total_credit,
			total_debit, total_transactions, duplicate_count, archived_count,
			assignment_breakdown
		 FROM statements WHERE id = ?`, documentID,
	).Scan(
		&payload.Statement.ID, &payload.Statement.Filename,
		&payload.Statement.DocumentURL, &uploadedAt,
		&totalCredit, &totalDebit,
		&payload.Metrics.TotalTransactions, &payload.Metrics.DuplicateCount,
		&payload.Metrics.ArchivedCount, &breakdown,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("statement %d not found", documentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load statement %d: %w", documentID, err)
	}
	payload.Statement.UploadedAt = uploadedAt

	if payload.Metrics.TotalCredit, err = decimal.NewFromString(totalCredit); err != nil {
		return nil, fmt.Errorf("bad total_credit for statement %d: %w", documentID, err)
	}
	if payload.Metrics.TotalDebit, err = decimal.NewFromString(totalDebit); err != nil {
		return nil, fmt.Errorf("bad total_debit for statement %d: %w", documentID, err)
	}
	if err = json.Unmarshal([]byte(breakdown), &payload.Metrics.AssignmentBreakdown); err != nil {
		return nil, fmt.Errorf("bad assignment breakdown for statement %d: %w", documentID, err)
	}

	if payload.Transactions, err = s.loadTransactions(ctx, documentID); err != nil {
		return nil, err
	}
	if payload.Duplicates, err = s.loadDuplicates(ctx, documentID); err != nil {
		return nil, err
	}
	if payload.Pages, err = s.loadPages(ctx, documentID); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *SQLiteStore) loadTransactions(ctx context.Context, stmtID int64) ([]model.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tran_date, narrative, reference_code, assignment_status,
			counterparty_name, credit, debit, is_archived, page_number,
			row_index, phones
		 FROM transactions WHERE statement_id = ? ORDER BY id`, stmtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.TransactionRecord
	for rows.Next() {
		var (
			rec    model.TransactionRecord
			credit string
			debit  string
			phones string
		)
		if err := rows.Scan(
			&rec.ID, &rec.TranDate, &rec.Narrative, &rec.ReferenceCode,
			&rec.AssignmentStatus, &rec.CounterpartyName, &credit, &debit,
			&rec.IsArchived, &rec.Metadata.PageNumber, &rec.Metadata.RowIndex,
			&phones,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if rec.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("bad credit for transaction %d: %w", rec.ID, err)
		}
		if rec.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("bad debit for transaction %d: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(phones), &rec.Metadata.Phones); err != nil {
			return nil, fmt.Errorf("bad phones for transaction %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) loadDuplicates(ctx context.Context, stmtID int64) ([]model.DuplicateRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, narrative_snapshot, reference_code, duplicate_reason,
			original_transaction_id, credit, debit, page_number, row_index,
			phones
		 FROM duplicates WHERE statement_id = ? ORDER BY id`, stmtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DuplicateRecord
	for rows.Next() {
		var (
			rec      model.DuplicateRecord
			credit   string
			debit    string
			phones   string
			original sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID, &rec.NarrativeSnapshot, &rec.ReferenceCode,
			&rec.DuplicateReason, &original, &credit, &debit,
			&rec.PageNumber, &rec.Metadata.RowIndex, &phones,
		); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate: %w", err)
		}
		if original.Valid {
			rec.OriginalTransactionID = original.Int64
		}
		if rec.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("bad credit for duplicate %d: %w", rec.ID, err)
		}
		if rec.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("bad debit for duplicate %d: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(phones), &rec.Metadata.Phones); err != nil {
			return nil, fmt.Errorf("bad phones for duplicate %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) loadPages(ctx context.Context, stmtID int64) ([]model.PageText, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT page_number, lines FROM pages WHERE statement_id = ? ORDER BY page_number`, stmtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []model.PageText
	for rows.Next() {
		var (
			page  model.PageText
			lines string
		)
		if err := rows.Scan(&page.PageNumber, &lines); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		if err := json.Unmarshal([]byte(lines), &page.Lines); err != nil {
			return nil, fmt.Errorf("bad lines for page %d: %w", page.PageNumber, err)
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// ListStatements returns the stored statement descriptors, newest first.
func (s *SQLiteStore) ListStatements(ctx context.Context) ([]model.StatementDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, document_url, uploaded_at FROM statements ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.StatementDocument
	for rows.Next() {
		var doc model.StatementDocument
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.DocumentURL, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
