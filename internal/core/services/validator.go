package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Validator runs structural and cross-reference checks over a built
// catalog. Checks produce typed findings; the run always completes and
// never aborts.
type Validator struct{}

// NewValidator creates a catalog validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate appends findings for the whole catalog to the report:
// missing avoid/good counterparts, highlights that no longer resolve,
// duplicate titles, and malformed reference URLs. Reconciliation
// warnings attached to examples are surfaced as diff-mismatch findings.
func (v *Validator) Validate(catalog *domain.Catalog, report *domain.ValidationReport) {
	titles := make(map[string]domain.PatternID)

	for di := range catalog.Documents {
		doc := &catalog.Documents[di]

		if first, dup := titles[doc.Title]; dup {
			report.Add(domain.Finding{
				Severity:   domain.SeverityWarning,
				Code:       domain.FindingDuplicateTitle,
				PatternID:  doc.ID,
				SourcePath: doc.SourcePath,
				Message:    fmt.Sprintf("title %q already used by %s", doc.Title, first),
			})
		} else {
			titles[doc.Title] = doc.ID
		}

		for _, ref := range doc.References {
			if !wellFormedURL(ref) {
				report.Add(domain.Finding{
					Severity:   domain.SeverityError,
					Code:       domain.FindingMalformedReference,
					PatternID:  doc.ID,
					SourcePath: doc.SourcePath,
					Message:    fmt.Sprintf("reference %q is not a well-formed URL", ref),
				})
			}
		}

		for ei := range doc.Examples {
			v.validateExample(doc, &doc.Examples[ei], report)
		}
	}
}

// validateExample checks one example's snippets and warnings.
func (v *Validator) validateExample(doc *domain.Document, ex *domain.Example, report *domain.ValidationReport) {
	if ex.Avoid == nil || ex.Good == nil {
		missing := "avoid"
		if ex.Avoid != nil {
			missing = "good"
		}
		report.Add(domain.Finding{
			Severity:   domain.SeverityError,
			Code:       domain.FindingMissingCounterpart,
			PatternID:  doc.ID,
			EntityID:   doc.BlockID(ex.Index, missing),
			SourcePath: doc.SourcePath,
			Message:    fmt.Sprintf("example %d has no %s snippet", ex.Index, missing),
		})
	}

	// Re-check highlight resolution at catalog scope in case of
	// cross-block drift after build.
	for _, role := range []struct {
		name  string
		block *domain.CodeBlock
	}{{"avoid", ex.Avoid}, {"good", ex.Good}} {
		if role.block == nil {
			continue
		}
		if msg := unresolvedHighlight(role.block); msg != "" {
			report.Add(domain.Finding{
				Severity:   domain.SeverityError,
				Code:       domain.FindingUnresolvedHighlight,
				PatternID:  doc.ID,
				EntityID:   doc.BlockID(ex.Index, role.name),
				SourcePath: doc.SourcePath,
				Message:    msg,
			})
		}
	}

	// The reconciler already flags summary drift on examples it aligned;
	// check here only when reconciliation never ran for this example.
	if ex.Diff != nil && !ex.Diff.SummaryConsistent() && !hasSummaryWarning(ex.Warnings) {
		report.Add(domain.Finding{
			Severity:   domain.SeverityWarning,
			Code:       domain.FindingSummaryMismatch,
			PatternID:  doc.ID,
			EntityID:   doc.BlockID(ex.Index, "diff"),
			SourcePath: doc.SourcePath,
			Message: fmt.Sprintf("diff summary +%d/-%d does not match +%d/-%d actual lines",
				ex.Diff.Summary.Added, ex.Diff.Summary.Removed,
				len(ex.Diff.AddedLines), len(ex.Diff.RemovedLines)),
		})
	}

	for _, w := range ex.Warnings {
		report.Add(domain.Finding{
			Severity:   domain.SeverityWarning,
			Code:       domain.FindingDiffMismatch,
			PatternID:  doc.ID,
			EntityID:   doc.BlockID(ex.Index, "diff"),
			SourcePath: doc.SourcePath,
			Message:    fmt.Sprintf("%s: %s", w.Kind, w.Message),
		})
	}
}

// hasSummaryWarning reports whether reconciliation already flagged the
// example's summary.
func hasSummaryWarning(warnings []domain.ReconciliationWarning) bool {
	for _, w := range warnings {
		if w.Kind == domain.ReconcileSummaryMismatch {
			return true
		}
	}
	return false
}

// unresolvedHighlight re-resolves a block's highlight sets, returning a
// description of the first failure or "".
func unresolvedHighlight(block *domain.CodeBlock) string {
	for _, n := range block.HighlightedLines {
		if n < 1 || n > block.LineCount() {
			return fmt.Sprintf("highlighted line %d out of range [1, %d]", n, block.LineCount())
		}
	}
	body := strings.Join(block.SourceLines, "\n")
	for _, th := range block.HighlightedTokens {
		count := strings.Count(body, th.Token)
		if count == 0 {
			return fmt.Sprintf("highlighted token %q not found", th.Token)
		}
		if th.Occurrence > 0 && count < th.Occurrence {
			return fmt.Sprintf("highlighted token %q has %d occurrences, wanted occurrence %d", th.Token, count, th.Occurrence)
		}
	}
	return ""
}

// wellFormedURL reports whether s is a syntactically valid absolute URL.
func wellFormedURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
