package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
)

// Ensure JSONExporter implements the interface.
var _ driven.Exporter = (*JSONExporter)(nil)

// JSONExporter writes the catalog artifact as indented JSON.
// JSON is the default artifact format.
type JSONExporter struct{}

// NewJSON creates a JSON exporter.
func NewJSON() *JSONExporter {
	return &JSONExporter{}
}

// Format returns "json".
func (e *JSONExporter) Format() string {
	return "json"
}

// Export writes the serialized catalog and report to w.
func (e *JSONExporter) Export(w io.Writer, catalog *domain.Catalog, report *domain.ValidationReport) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewArtifact(catalog, report)); err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	return nil
}
