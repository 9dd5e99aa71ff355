package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/logger"
)

// StatsFunc parses occurrence counts out of closing-notes prose.
// Wired to the stats parser at startup; injected so the builder stays
// free of parser imports.
type StatsFunc func(text string) *domain.OccurrenceStat

// Builder assembles parsed documents into an ordered catalog, assigns
// stable identifiers, and merges per-document occurrence statistics.
type Builder struct {
	stats StatsFunc
}

// NewBuilder creates a catalog builder.
func NewBuilder(stats StatsFunc) *Builder {
	return &Builder{stats: stats}
}

// Build produces the catalog for one ingestion run. Documents are
// processed in (categoryId, sourcePath) order so duplicate detection and
// the final ordering are reproducible regardless of input order. When
// two documents share a category id the later one in sort order is
// excluded and recorded on the report; the run continues.
func (b *Builder) Build(docs []*domain.Document, runID string, report *domain.ValidationReport) *domain.Catalog {
	sorted := make([]*domain.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CategoryID != sorted[j].CategoryID {
			return sorted[i].CategoryID < sorted[j].CategoryID
		}
		return sorted[i].SourcePath < sorted[j].SourcePath
	})

	catalog := &domain.Catalog{
		RunID:   runID,
		BuiltAt: time.Now(),
	}

	seen := make(map[int]string)
	for _, doc := range sorted {
		if firstPath, dup := seen[doc.CategoryID]; dup {
			logger.Warn("Excluding %s: category %d already claimed by %s", doc.SourcePath, doc.CategoryID, firstPath)
			report.Add(domain.Finding{
				Severity:   domain.SeverityError,
				Code:       domain.FindingDuplicateCategory,
				PatternID:  domain.NewPatternID(doc.CategoryID),
				SourcePath: doc.SourcePath,
				Message: fmt.Errorf("%w: category %d already used by %s",
					domain.ErrDuplicateCategory, doc.CategoryID, firstPath).Error(),
			})
			report.AddFailed(doc.SourcePath, fmt.Sprintf("duplicate category id %d", doc.CategoryID))
			continue
		}
		seen[doc.CategoryID] = doc.SourcePath

		entry := *doc
		entry.ID = domain.NewPatternID(entry.CategoryID)
		if entry.Notes != "" {
			entry.Stats = b.stats(entry.Notes)
		}
		catalog.Documents = append(catalog.Documents, entry)
	}

	logger.Info("Catalog built: %d entries from %d documents", len(catalog.Documents), len(docs))
	return catalog
}
