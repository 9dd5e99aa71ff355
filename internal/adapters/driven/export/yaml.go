package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
)

// Ensure YAMLExporter implements the interface.
var _ driven.Exporter = (*YAMLExporter)(nil)

// YAMLExporter writes the catalog artifact as YAML.
type YAMLExporter struct{}

// NewYAML creates a YAML exporter.
func NewYAML() *YAMLExporter {
	return &YAMLExporter{}
}

// Format returns "yaml".
func (e *YAMLExporter) Format() string {
	return "yaml"
}

// Export writes the serialized catalog and report to w.
func (e *YAMLExporter) Export(w io.Writer, catalog *domain.Catalog, report *domain.ValidationReport) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck
	if err := enc.Encode(NewArtifact(catalog, report)); err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}
	return nil
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (driven.Exporter, error) {
	switch format {
	case "", "json":
		return NewJSON(), nil
	case "yaml", "yml":
		return NewYAML(), nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
}
