package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// GetPatternInput is the input schema for the get_pattern tool.
type GetPatternInput struct {
	PatternID string `json:"pattern_id" jsonschema:"the stable pattern identifier, e.g. pattern-3"`
}

// GetPatternOutput is the output schema for the get_pattern tool.
type GetPatternOutput struct {
	Pattern PatternInfo `json:"pattern"`
}

// SearchPatternsInput is the input schema for the search_patterns tool.
type SearchPatternsInput struct {
	Query string `json:"query" jsonschema:"text to match against pattern titles and introductions"`
}

// SearchPatternsOutput is the output schema for the search_patterns tool.
type SearchPatternsOutput struct {
	Patterns []PatternInfo `json:"patterns"`
	Count    int           `json:"count"`
}

// ListFindingsInput is the input schema for the list_findings tool.
type ListFindingsInput struct {
	Severity string `json:"severity,omitempty" jsonschema:"filter by severity: error, warning, or info (default all)"`
}

// ListFindingsOutput is the output schema for the list_findings tool.
type ListFindingsOutput struct {
	Findings []FindingInfo `json:"findings"`
	Count    int           `json:"count"`
}

// PatternInfo is a catalog entry summary.
type PatternInfo struct {
	ID           string `json:"id"`
	CategoryID   int    `json:"category_id"`
	Title        string `json:"title"`
	Introduction string `json:"introduction,omitempty"`
	ExampleCount int    `json:"example_count"`
	SourcePath   string `json:"source_path"`
}

// FindingInfo is one validation finding.
type FindingInfo struct {
	Severity  string `json:"severity"`
	Code      string `json:"code"`
	PatternID string `json:"pattern_id,omitempty"`
	EntityID  string `json:"entity_id,omitempty"`
	Message   string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_pattern",
		Description: "Get one anti-pattern catalog entry by its stable identifier",
	}, s.handleGetPattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_patterns",
		Description: "Search the anti-pattern catalog by title or introduction text",
	}, s.handleSearchPatterns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_findings",
		Description: "List validation findings from the last catalog build",
	}, s.handleListFindings)
}

// handleGetPattern handles the get_pattern tool invocation.
func (s *Server) handleGetPattern(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetPatternInput,
) (*mcp.CallToolResult, GetPatternOutput, error) {
	doc, err := s.ports.Catalog.Get(ctx, domain.PatternID(input.PatternID))
	if err != nil {
		return nil, GetPatternOutput{}, err
	}

	return nil, GetPatternOutput{Pattern: patternInfo(doc)}, nil
}

// handleSearchPatterns handles the search_patterns tool invocation.
func (s *Server) handleSearchPatterns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPatternsInput,
) (*mcp.CallToolResult, SearchPatternsOutput, error) {
	docs, err := s.ports.Catalog.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchPatternsOutput{}, err
	}

	output := SearchPatternsOutput{
		Patterns: make([]PatternInfo, len(docs)),
		Count:    len(docs),
	}
	for i := range docs {
		output.Patterns[i] = patternInfo(&docs[i])
	}

	return nil, output, nil
}

// handleListFindings handles the list_findings tool invocation.
func (s *Server) handleListFindings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFindingsInput,
) (*mcp.CallToolResult, ListFindingsOutput, error) {
	report, err := s.ports.Catalog.Report(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ListFindingsOutput{Findings: []FindingInfo{}}, nil
		}
		return nil, ListFindingsOutput{}, err
	}

	output := ListFindingsOutput{Findings: []FindingInfo{}}
	for _, f := range report.Findings {
		if input.Severity != "" && f.Severity.String() != input.Severity {
			continue
		}
		output.Findings = append(output.Findings, FindingInfo{
			Severity:  f.Severity.String(),
			Code:      string(f.Code),
			PatternID: string(f.PatternID),
			EntityID:  f.EntityID,
			Message:   f.Message,
		})
	}
	output.Count = len(output.Findings)

	return nil, output, nil
}

// patternInfo builds a summary from a document.
func patternInfo(doc *domain.Document) PatternInfo {
	return PatternInfo{
		ID:           string(doc.ID),
		CategoryID:   doc.CategoryID,
		Title:        doc.Title,
		Introduction: doc.Introduction,
		ExampleCount: len(doc.Examples),
		SourcePath:   doc.SourcePath,
	}
}
