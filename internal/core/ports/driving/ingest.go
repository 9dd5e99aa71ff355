package driving

import (
	"context"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// IngestResult is the outcome of one ingestion run: the built catalog and
// the validation report covering it.
type IngestResult struct {
	// Catalog is the validated catalog. Nil only when the run failed
	// fatally (zero readable documents).
	Catalog *domain.Catalog

	// Report is the validation report. Always present on success.
	Report *domain.ValidationReport
}

// IngestOrchestrator runs the full batch pipeline over a source tree:
// bulk read, per-document parse/extract/reconcile, catalog build,
// validation.
type IngestOrchestrator interface {
	// Ingest processes every document under dir. Per-document structural
	// failures are downgraded to report entries; the only fatal error is
	// domain.ErrNoContentFound when zero documents are readable.
	Ingest(ctx context.Context, dir string) (*IngestResult, error)
}
