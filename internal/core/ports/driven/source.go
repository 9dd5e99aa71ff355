package driven

import (
	"context"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// SourceReader performs the pipeline's single bulk read: it lists and
// loads every content document under a source tree.
type SourceReader interface {
	// ReadAll returns every readable document in a fixed, stable order
	// (lexical by path) so downstream duplicate detection and catalog
	// ordering are reproducible across runs. Unreadable files are
	// skipped; an empty result is not an error at this layer.
	ReadAll(ctx context.Context, dir string) ([]domain.RawDocument, error)
}
