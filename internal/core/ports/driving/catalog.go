package driving

import (
	"context"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// CatalogQuery exposes read access to a persisted catalog for the CLI,
// TUI, and MCP surfaces.
type CatalogQuery interface {
	// Catalog returns the stored catalog, or domain.ErrNotFound when no
	// build has been persisted yet.
	Catalog(ctx context.Context) (*domain.Catalog, error)

	// Get returns one catalogued document by pattern id.
	Get(ctx context.Context, id domain.PatternID) (*domain.Document, error)

	// List returns all catalogued documents ordered by category id.
	List(ctx context.Context) ([]domain.Document, error)

	// Search returns documents whose title or introduction contains the
	// query, case-insensitively, preserving catalog order.
	Search(ctx context.Context, query string) ([]domain.Document, error)

	// Report returns the stored validation report, or domain.ErrNotFound.
	Report(ctx context.Context) (*domain.ValidationReport, error)
}
