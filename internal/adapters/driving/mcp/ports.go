package mcp

import (
	"errors"

	"github.com/custodia-labs/antipat/internal/core/ports/driving"
)

// ErrMissingCatalogService indicates the server was built without its
// required catalog query port.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog provides read access to the persisted pattern catalog.
	Catalog driving.CatalogQuery
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
