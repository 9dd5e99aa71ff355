package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// uriScheme is the custom URI scheme for antipat resources.
const uriScheme = "antipat://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole catalog listing.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "The full anti-pattern catalog listing",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// Template for one pattern's full entry.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "patterns/{patternId}",
		Name:        "pattern",
		Description: "One anti-pattern entry with its examples and diffs",
		MIMEType:    "application/json",
	}, s.handlePatternResource)
}

// handleCatalogResource returns the catalog listing.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing patterns: %w", err)
	}

	infos := make([]PatternInfo, len(docs))
	for i := range docs {
		infos[i] = patternInfo(&docs[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePatternResource returns one pattern's full entry.
func (s *Server) handlePatternResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract patternId from URI: antipat://patterns/{patternId}
	id := extractPatternID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Catalog.Get(ctx, domain.PatternID(id))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pattern: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPatternID pulls the pattern id out of a patterns/{id} URI.
func extractPatternID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"patterns/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
