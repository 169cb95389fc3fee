package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// PayloadSource is a file-backed document source: one exported statement
// payload in JSON form. Useful for viewing an export without a database.
type PayloadSource struct {
	payload *model.StatementPayload
}

// LoadPayload parses a statement payload JSON file.
func LoadPayload(path string) (*model.StatementPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	var payload model.StatementPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload file %s: %w", path, err)
	}
	return &payload, nil
}

// NewPayloadSource wraps a payload file as a document source.
func NewPayloadSource(path string) (*PayloadSource, error) {
	payload, err := LoadPayload(path)
	if err != nil {
		return nil, err
	}
	return &PayloadSource{payload: payload}, nil
}

// GetStatementPayload returns the loaded payload. The id must match the
// payload's statement id, or be zero to take whatever the file holds.
func (p *PayloadSource) GetStatementPayload(_ context.Context, documentID int64) (*model.StatementPayload, error) {
	if documentID != 0 && documentID != p.payload.Statement.ID {
		return nil, fmt.Errorf("statement %d not found in payload file", documentID)
	}
	return p.payload, nil
}

// ListStatements returns the single statement the file describes.
func (p *PayloadSource) ListStatements(_ context.Context) ([]model.StatementDocument, error) {
	return []model.StatementDocument{p.payload.Statement}, nil
}

// Close is a no-op for file-backed sources.
func (p *PayloadSource) Close() error { return nil }
