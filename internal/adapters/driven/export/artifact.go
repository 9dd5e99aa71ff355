// Package export serializes a built catalog and its validation report
// into the output artifact. The wire shape is decoupled from the domain
// model so the domain stays tag-free.
package export

import (
	"fmt"
	"time"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Artifact is the serialized output of one ingestion run.
type Artifact struct {
	RunID    string       `json:"run_id" yaml:"run_id"`
	BuiltAt  time.Time    `json:"built_at" yaml:"built_at"`
	Patterns []PatternDTO `json:"patterns" yaml:"patterns"`
	Report   ReportDTO    `json:"report" yaml:"report"`
}

// PatternDTO is one catalog entry on the wire.
type PatternDTO struct {
	ID           string       `json:"id" yaml:"id"`
	CategoryID   int          `json:"category_id" yaml:"category_id"`
	Title        string       `json:"title" yaml:"title"`
	Introduction string       `json:"introduction,omitempty" yaml:"introduction,omitempty"`
	References   []string     `json:"references,omitempty" yaml:"references,omitempty"`
	Examples     []ExampleDTO `json:"examples" yaml:"examples"`
	Notes        string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Stats        *StatsDTO    `json:"occurrence_stats,omitempty" yaml:"occurrence_stats,omitempty"`
	SourcePath   string       `json:"source_path" yaml:"source_path"`
}

// ExampleDTO is one before/after illustration on the wire.
type ExampleDTO struct {
	Index          int           `json:"index" yaml:"index"`
	Label          string        `json:"label" yaml:"label"`
	Avoid          *CodeBlockDTO `json:"avoid,omitempty" yaml:"avoid,omitempty"`
	Good           *CodeBlockDTO `json:"good,omitempty" yaml:"good,omitempty"`
	Diff           *DiffDTO      `json:"diff,omitempty" yaml:"diff,omitempty"`
	RationaleAvoid string        `json:"rationale_avoid,omitempty" yaml:"rationale_avoid,omitempty"`
	RationaleGood  string        `json:"rationale_good,omitempty" yaml:"rationale_good,omitempty"`
	Warnings       []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CodeBlockDTO is a code snippet on the wire.
type CodeBlockDTO struct {
	Language         string     `json:"language,omitempty" yaml:"language,omitempty"`
	Filename         string     `json:"filename,omitempty" yaml:"filename,omitempty"`
	SourceLines      []string   `json:"source_lines" yaml:"source_lines"`
	ShowLineNumbers  bool       `json:"show_line_numbers,omitempty" yaml:"show_line_numbers,omitempty"`
	HighlightedLines []int      `json:"highlighted_lines,omitempty" yaml:"highlighted_lines,omitempty"`
	Tokens           []TokenDTO `json:"highlighted_tokens,omitempty" yaml:"highlighted_tokens,omitempty"`
}

// TokenDTO is one token emphasis on the wire.
type TokenDTO struct {
	Token      string `json:"token" yaml:"token"`
	Occurrence int    `json:"occurrence,omitempty" yaml:"occurrence,omitempty"`
}

// DiffDTO is a diff block on the wire.
type DiffDTO struct {
	Added    []string `json:"added" yaml:"added"`
	Removed  []string `json:"removed" yaml:"removed"`
	Context  []string `json:"context,omitempty" yaml:"context,omitempty"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Computed bool     `json:"computed,omitempty" yaml:"computed,omitempty"`
}

// StatsDTO carries occurrence statistics with the derived percentage.
type StatsDTO struct {
	Occurrences        int     `json:"occurrences" yaml:"occurrences"`
	TotalOpportunities *int    `json:"total_opportunities,omitempty" yaml:"total_opportunities,omitempty"`
	Percentage         float64 `json:"percentage" yaml:"percentage"`
}

// ReportDTO is the validation report on the wire.
type ReportDTO struct {
	Errors   int          `json:"errors" yaml:"errors"`
	Warnings int          `json:"warnings" yaml:"warnings"`
	Findings []FindingDTO `json:"findings,omitempty" yaml:"findings,omitempty"`
	Failed   []FailedDTO  `json:"failed_documents,omitempty" yaml:"failed_documents,omitempty"`
}

// FindingDTO is one validation finding on the wire.
type FindingDTO struct {
	Severity   string `json:"severity" yaml:"severity"`
	Code       string `json:"code" yaml:"code"`
	PatternID  string `json:"pattern_id,omitempty" yaml:"pattern_id,omitempty"`
	EntityID   string `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`
	Message    string `json:"message" yaml:"message"`
}

// FailedDTO is one excluded document on the wire.
type FailedDTO struct {
	SourcePath string `json:"source_path" yaml:"source_path"`
	Reason     string `json:"reason" yaml:"reason"`
}

// NewArtifact maps a catalog and report into the wire shape.
func NewArtifact(catalog *domain.Catalog, report *domain.ValidationReport) *Artifact {
	a := &Artifact{
		RunID:    catalog.RunID,
		BuiltAt:  catalog.BuiltAt,
		Patterns: make([]PatternDTO, 0, len(catalog.Documents)),
	}

	for i := range catalog.Documents {
		a.Patterns = append(a.Patterns, newPatternDTO(&catalog.Documents[i]))
	}

	if report != nil {
		a.Report.Errors = report.Count(domain.SeverityError)
		a.Report.Warnings = report.Count(domain.SeverityWarning)
		for _, f := range report.Findings {
			a.Report.Findings = append(a.Report.Findings, FindingDTO{
				Severity:   f.Severity.String(),
				Code:       string(f.Code),
				PatternID:  string(f.PatternID),
				EntityID:   f.EntityID,
				SourcePath: f.SourcePath,
				Message:    f.Message,
			})
		}
		for _, fd := range report.Failed {
			a.Report.Failed = append(a.Report.Failed, FailedDTO{
				SourcePath: fd.SourcePath,
				Reason:     fd.Reason,
			})
		}
	}

	return a
}

func newPatternDTO(doc *domain.Document) PatternDTO {
	p := PatternDTO{
		ID:           string(doc.ID),
		CategoryID:   doc.CategoryID,
		Title:        doc.Title,
		Introduction: doc.Introduction,
		References:   doc.References,
		Notes:        doc.Notes,
		SourcePath:   doc.SourcePath,
	}

	if doc.Stats != nil {
		p.Stats = &StatsDTO{
			Occurrences:        doc.Stats.Occurrences,
			TotalOpportunities: doc.Stats.TotalOpportunities,
			Percentage:         doc.Stats.Percentage(),
		}
	}

	for i := range doc.Examples {
		p.Examples = append(p.Examples, newExampleDTO(&doc.Examples[i]))
	}

	return p
}

func newExampleDTO(ex *domain.Example) ExampleDTO {
	dto := ExampleDTO{
		Index:          ex.Index,
		Label:          ex.Label,
		Avoid:          newCodeBlockDTO(ex.Avoid),
		Good:           newCodeBlockDTO(ex.Good),
		RationaleAvoid: ex.RationaleAvoid,
		RationaleGood:  ex.RationaleGood,
	}

	if ex.Diff != nil {
		d := &DiffDTO{
			Added:    ex.Diff.AddedLines,
			Removed:  ex.Diff.RemovedLines,
			Context:  ex.Diff.UnchangedContext,
			Computed: ex.Diff.Computed,
		}
		if ex.Diff.Summary != nil {
			d.Summary = summaryString(ex.Diff.Summary)
		}
		dto.Diff = d
	}

	for _, w := range ex.Warnings {
		dto.Warnings = append(dto.Warnings, w.Kind.String()+": "+w.Message)
	}

	return dto
}

func newCodeBlockDTO(block *domain.CodeBlock) *CodeBlockDTO {
	if block == nil {
		return nil
	}
	dto := &CodeBlockDTO{
		Language:         block.Language,
		Filename:         block.Filename,
		SourceLines:      block.SourceLines,
		ShowLineNumbers:  block.ShowLineNumbers,
		HighlightedLines: block.HighlightedLines,
	}
	for _, th := range block.HighlightedTokens {
		dto.Tokens = append(dto.Tokens, TokenDTO{Token: th.Token, Occurrence: th.Occurrence})
	}
	return dto
}

func summaryString(s *domain.DiffSummary) string {
	return fmt.Sprintf("+%d/-%d", s.Added, s.Removed)
}
