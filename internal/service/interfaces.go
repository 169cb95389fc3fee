// Package service defines the contracts between the viewer engine and its
// external collaborators.
package service

import (
	"context"

	"github.com/ledgerlens/ledgerlens/internal/anchor"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// DocumentSource is the data collaborator: it hands the viewer a complete
// statement payload. How the payload was fetched or parsed is not the
// viewer's concern.
type DocumentSource interface {
	GetStatementPayload(ctx context.Context, documentID int64) (*model.StatementPayload, error)
	ListStatements(ctx context.Context) ([]model.StatementDocument, error)
	Close() error
}

// PageRenderer is the rendering surface: it owns page geometry and produces
// the positioned text fragments the engine reads. The engine never mutates
// fragments; its claim annotations live in an engine-owned side table.
type PageRenderer interface {
	// PageCount reports how many pages the rendered document has.
	PageCount() int

	// Fragments returns the current fragments of a page. An empty slice
	// means the page has not laid out yet; the engine treats that as a
	// transient condition.
	Fragments(page int) []anchor.Fragment

	// SetZoom rescales the page geometry. Fragment rectangles returned
	// after this call reflect the new factor.
	SetZoom(factor float64)
}
