package driven

import (
	"context"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// CatalogStore persists built catalogs and their validation reports.
// A store holds at most one catalog; saving replaces it wholesale,
// mirroring the rebuild-on-change lifecycle.
type CatalogStore interface {
	// SaveCatalog replaces the stored catalog.
	SaveCatalog(ctx context.Context, catalog *domain.Catalog) error

	// LoadCatalog returns the stored catalog, or domain.ErrNotFound.
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)

	// GetDocument returns one catalogued document by pattern id.
	GetDocument(ctx context.Context, id domain.PatternID) (*domain.Document, error)

	// ListDocuments returns all catalogued documents ordered by
	// category id.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// SaveReport replaces the stored validation report.
	SaveReport(ctx context.Context, report *domain.ValidationReport) error

	// LoadReport returns the stored report, or domain.ErrNotFound.
	LoadReport(ctx context.Context) (*domain.ValidationReport, error)
}
