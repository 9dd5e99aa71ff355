package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
	"github.com/custodia-labs/antipat/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogQuery = (*CatalogService)(nil)

// CatalogService exposes read access to a persisted catalog.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a catalog query service over a store.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Catalog returns the stored catalog.
func (s *CatalogService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	return s.store.LoadCatalog(ctx)
}

// Get returns one catalogued document by pattern id.
func (s *CatalogService) Get(ctx context.Context, id domain.PatternID) (*domain.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// List returns all catalogued documents ordered by category id.
func (s *CatalogService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Search returns documents whose title or introduction contains the
// query, case-insensitively, preserving catalog order.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Document, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return docs, nil
	}

	var matches []domain.Document
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Introduction), needle) {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

// Report returns the stored validation report.
func (s *CatalogService) Report(ctx context.Context) (*domain.ValidationReport, error) {
	return s.store.LoadReport(ctx)
}
