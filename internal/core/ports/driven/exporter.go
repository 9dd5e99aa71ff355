package driven

import (
	"io"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Exporter serializes a catalog and its report into an artifact.
type Exporter interface {
	// Format returns the exporter's format name, e.g. "json".
	Format() string

	// Export writes the serialized catalog and report to w.
	Export(w io.Writer, catalog *domain.Catalog, report *domain.ValidationReport) error
}
