package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "statements.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func storedPayload() *model.StatementPayload {
	page := 2
	row := 14
	return &model.StatementPayload{
		Statement: model.StatementDocument{
			ID:          42,
			Filename:    "june.pdf",
			DocumentURL: "https://files.example.com/june.pdf",
			UploadedAt:  time.Date(2024, time.June, 30, 9, 15, 0, 0, time.UTC),
		},
		Metrics: model.Metrics{
			TotalCredit:       decimal.RequireFromString("150000.50"),
			TotalDebit:        decimal.RequireFromString("98765.43"),
			TotalTransactions: 2,
			DuplicateCount:    1,
			ArchivedCount:     1,
			AssignmentBreakdown: map[model.Status]int{
				model.StatusAutoAssigned: 1,
				model.StatusUnassigned:   1,
			},
		},
		Transactions: []model.TransactionRecord{
			{
				ID:               1,
				TranDate:         time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
				Narrative:        "SALARY PAYMENT FOR THE MONTH OF JUNE",
				ReferenceCode:    "FT24001ABC",
				AssignmentStatus: "auto_assigned",
				CounterpartyName: "Jane Wanjiku",
				Credit:           decimal.RequireFromString("12345.60"),
				Metadata: model.RecordMetadata{
					Phones:     []string{"254712345678"},
					PageNumber: &page,
					RowIndex:   &row,
				},
			},
			{
				ID:         2,
				TranDate:   time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
				Narrative:  "BANK CHARGES",
				Debit:      decimal.RequireFromString("250"),
				IsArchived: true,
			},
		},
		Duplicates: []model.DuplicateRecord{
			{
				ID:                    7,
				NarrativeSnapshot:     "SALARY PAYMENT FOR THE MONTH OF JUNE",
				ReferenceCode:         "FT24001ABC",
				DuplicateReason:       "row hash collision",
				OriginalTransactionID: 1,
				Credit:                decimal.RequireFromString("12345.60"),
				PageNumber:            &page,
			},
		},
		Pages: []model.PageText{
			{PageNumber: 1, Lines: []string{"STATEMENT OF ACCOUNT", ""}},
			{PageNumber: 2, Lines: []string{"02/06/2024  FT24001ABC  12,345.60"}},
		},
	}
}

func TestSaveAndGetStatementPayload(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved := storedPayload()
	require.NoError(t, store.SaveStatementPayload(ctx, saved))

	loaded, err := store.GetStatementPayload(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, saved.Statement.Filename, loaded.Statement.Filename)
	assert.Equal(t, saved.Statement.DocumentURL, loaded.Statement.DocumentURL)
	assert.True(t, saved.Statement.UploadedAt.Equal(loaded.Statement.UploadedAt))

	assert.True(t, saved.Metrics.TotalCredit.Equal(loaded.Metrics.TotalCredit))
	assert.True(t, saved.Metrics.TotalDebit.Equal(loaded.Metrics.TotalDebit))
	assert.Equal(t, saved.Metrics.AssignmentBreakdown, loaded.Metrics.AssignmentBreakdown)

	require.Len(t, loaded.Transactions, 2)
	tx := loaded.Transactions[0]
	assert.Equal(t, "FT24001ABC", tx.ReferenceCode)
	assert.Equal(t, "Jane Wanjiku", tx.CounterpartyName)
	assert.True(t, tx.Credit.Equal(decimal.RequireFromString("12345.60")))
	assert.Equal(t, []string{"254712345678"}, tx.Metadata.Phones)
	require.NotNil(t, tx.Metadata.PageNumber)
	assert.Equal(t, 2, *tx.Metadata.PageNumber)
	require.NotNil(t, tx.Metadata.RowIndex)
	assert.Equal(t, 14, *tx.Metadata.RowIndex)

	assert.True(t, loaded.Transactions[1].IsArchived)
	assert.Nil(t, loaded.Transactions[1].Metadata.PageNumber)

	require.Len(t, loaded.Duplicates, 1)
	dup := loaded.Duplicates[0]
	assert.Equal(t, int64(1), dup.OriginalTransactionID)
	assert.Equal(t, "row hash collision", dup.DuplicateReason)
	require.NotNil(t, dup.PageNumber)
	assert.Equal(t, 2, *dup.PageNumber)

	require.Len(t, loaded.Pages, 2)
	assert.Equal(t, []string{"STATEMENT OF ACCOUNT", ""}, loaded.Pages[0].Lines)
}

func TestSaveReplacesPreviousCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := storedPayload()
	require.NoError(t, store.SaveStatementPayload(ctx, first))

	second := storedPayload()
	second.Statement.Filename = "june-v2.pdf"
	second.Transactions = second.Transactions[:1]
	second.Duplicates = nil
	require.NoError(t, store.SaveStatementPayload(ctx, second))

	loaded, err := store.GetStatementPayload(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "june-v2.pdf", loaded.Statement.Filename)
	assert.Len(t, loaded.Transactions, 1)
	assert.Empty(t, loaded.Duplicates)
}

func TestGetStatementPayloadNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetStatementPayload(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListStatementsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := storedPayload()
	older.Statement.ID = 1
	older.Statement.UploadedAt = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveStatementPayload(ctx, older))

	newer := storedPayload()
	newer.Statement.ID = 2
	newer.Statement.UploadedAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveStatementPayload(ctx, newer))

	docs, err := store.ListStatements(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.Equal(t, int64(1), docs[1].ID)
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}
