// Package memory provides in-memory store implementations, used by the
// build pipeline before persistence and by tests.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	catalog *domain.Catalog
	report  *domain.ValidationReport
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// SaveCatalog replaces the stored catalog.
func (s *CatalogStore) SaveCatalog(_ context.Context, catalog *domain.Catalog) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	return nil
}

// LoadCatalog returns the stored catalog.
func (s *CatalogStore) LoadCatalog(_ context.Context) (*domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, domain.ErrNotFound
	}
	return s.catalog, nil
}

// GetDocument returns one catalogued document by pattern id.
func (s *CatalogStore) GetDocument(_ context.Context, id domain.PatternID) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, domain.ErrNotFound
	}
	return s.catalog.Get(id)
}

// ListDocuments returns all catalogued documents ordered by category id.
func (s *CatalogStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, domain.ErrNotFound
	}
	docs := make([]domain.Document, len(s.catalog.Documents))
	copy(docs, s.catalog.Documents)
	return docs, nil
}

// SaveReport replaces the stored validation report.
func (s *CatalogStore) SaveReport(_ context.Context, report *domain.ValidationReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
	return nil
}

// LoadReport returns the stored validation report.
func (s *CatalogStore) LoadReport(_ context.Context) (*domain.ValidationReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, domain.ErrNotFound
	}
	return s.report, nil
}
