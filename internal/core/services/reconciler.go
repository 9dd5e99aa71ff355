package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Reconciler validates a document's literal diff against the alignment
// computed from its avoid/good snippet pair. Documentation diffs are
// hand-authored and may legitimately summarize, so mismatches are
// catalogued as warnings rather than rejected.
type Reconciler struct{}

// NewReconciler creates a new diff reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile computes the line-level delta between the snippets and
// compares it with the literal diff when one exists.
//
// With no literal diff, the computed alignment becomes the authoritative
// DiffBlock. With a literal diff, the literal block stays authoritative
// and any disagreement between its added/removed sets and the computed
// ones yields a ReconciliationWarning. Line comparison is
// whitespace-normalized throughout.
func (r *Reconciler) Reconcile(avoid, good *domain.CodeBlock, literal *domain.DiffBlock) (*domain.DiffBlock, []domain.ReconciliationWarning) {
	if avoid == nil || good == nil {
		// Nothing to align against; keep whatever the document said.
		return literal, nil
	}

	computed := computeAlignment(avoid.SourceLines, good.SourceLines)
	if literal == nil {
		computed.Computed = true
		return computed, nil
	}

	var warnings []domain.ReconciliationWarning
	warnings = append(warnings, compareSets(literal.AddedLines, computed.AddedLines,
		domain.ReconcileExtraAdded, domain.ReconcileMissingAdded, "added")...)
	warnings = append(warnings, compareSets(literal.RemovedLines, computed.RemovedLines,
		domain.ReconcileExtraRemoved, domain.ReconcileMissingRemoved, "removed")...)

	if !literal.SummaryConsistent() {
		warnings = append(warnings, domain.ReconciliationWarning{
			Kind: domain.ReconcileSummaryMismatch,
			Message: fmt.Sprintf("summary declares +%d/-%d but diff has +%d/-%d",
				literal.Summary.Added, literal.Summary.Removed,
				len(literal.AddedLines), len(literal.RemovedLines)),
		})
	}

	return literal, warnings
}

// computeAlignment runs a line-level longest-common-subsequence between
// the two snippets. LCS lines are unchanged context; lines only in good
// are additions, lines only in avoid are removals.
func computeAlignment(avoidLines, goodLines []string) *domain.DiffBlock {
	a := normalizeAll(avoidLines)
	b := normalizeAll(goodLines)

	// Classic DP table: lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	d := &domain.DiffBlock{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			d.UnchangedContext = append(d.UnchangedContext, avoidLines[i])
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			d.RemovedLines = append(d.RemovedLines, avoidLines[i])
			i++
		default:
			d.AddedLines = append(d.AddedLines, goodLines[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		d.RemovedLines = append(d.RemovedLines, avoidLines[i])
	}
	for ; j < len(b); j++ {
		d.AddedLines = append(d.AddedLines, goodLines[j])
	}

	return d
}

// compareSets diffs the literal and computed line sets in both
// directions, producing one warning per disagreement.
func compareSets(literal, computed []string, extraKind, missingKind domain.ReconciliationKind, what string) []domain.ReconciliationWarning {
	literalSet := normalizeSet(literal)
	computedSet := normalizeSet(computed)

	var warnings []domain.ReconciliationWarning
	for _, line := range literal {
		if !computedSet[normalizeLine(line)] {
			warnings = append(warnings, domain.ReconciliationWarning{
				Kind:    extraKind,
				Line:    normalizeLine(line),
				Message: fmt.Sprintf("diff marks %q as %s but the snippets do not", normalizeLine(line), what),
			})
		}
	}
	for _, line := range computed {
		if !literalSet[normalizeLine(line)] {
			warnings = append(warnings, domain.ReconciliationWarning{
				Kind:    missingKind,
				Line:    normalizeLine(line),
				Message: fmt.Sprintf("snippets show %q as %s but the diff omits it", normalizeLine(line), what),
			})
		}
	}
	return warnings
}

// normalizeLine collapses runs of whitespace so hand-authored diffs and
// snippets compare on content, not indentation.
func normalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func normalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = normalizeLine(l)
	}
	return out
}

func normalizeSet(lines []string) map[string]bool {
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[normalizeLine(l)] = true
	}
	return set
}
