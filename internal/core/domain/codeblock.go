package domain

// CodeBlock is a fenced code snippet with its resolved annotations.
type CodeBlock struct {
	// Language is the fence's language tag, e.g. "jsx".
	Language string

	// Filename is the display filename annotation. Optional.
	Filename string

	// SourceLines is the snippet's text, one entry per line, 1-indexed
	// from the reader's point of view (SourceLines[0] is line 1).
	SourceLines []string

	// ShowLineNumbers records the line-numbering toggle annotation.
	ShowLineNumbers bool

	// HighlightedLines is the resolved, sorted set of highlighted line
	// numbers. Every entry is within [1, len(SourceLines)].
	HighlightedLines []int

	// HighlightedTokens is the resolved set of emphasized tokens.
	// Every token occurs at least once in SourceLines.
	HighlightedTokens []TokenHighlight
}

// TokenHighlight emphasizes occurrences of a token inside a code block.
type TokenHighlight struct {
	// Token is the emphasized text.
	Token string

	// Occurrence selects the Nth occurrence only (1-based).
	// Zero means every occurrence.
	Occurrence int
}

// LineCount returns the number of source lines.
func (b *CodeBlock) LineCount() int {
	return len(b.SourceLines)
}

// DiffBlock is the line-level delta between an avoid and a good snippet.
type DiffBlock struct {
	// AddedLines are present only in the good snippet.
	AddedLines []string

	// RemovedLines are present only in the avoid snippet.
	RemovedLines []string

	// UnchangedContext are lines common to both snippets, in order.
	UnchangedContext []string

	// Summary is the authored "+N/-M" count annotation. Nil when the
	// diff carries no summary. When present its counts must equal
	// len(AddedLines) and len(RemovedLines) exactly.
	Summary *DiffSummary

	// Computed is true when this block is the reconciler's alignment
	// rather than a hand-authored diff from the document.
	Computed bool
}

// DiffSummary is the authored add/remove count pair.
type DiffSummary struct {
	Added   int
	Removed int
}

// SummaryConsistent reports whether the authored summary matches the
// actual added/removed line counts. A nil summary is consistent.
func (d *DiffBlock) SummaryConsistent() bool {
	if d.Summary == nil {
		return true
	}
	return d.Summary.Added == len(d.AddedLines) && d.Summary.Removed == len(d.RemovedLines)
}

// ReconciliationWarning records a non-fatal mismatch between a document's
// literal diff and the alignment computed from its snippets. Warnings are
// catalogued on the surviving example, never rejected.
type ReconciliationWarning struct {
	// Kind classifies the mismatch.
	Kind ReconciliationKind

	// Line is the offending diff line, whitespace-normalized.
	Line string

	// Message is a human-readable description.
	Message string
}

// ReconciliationKind classifies a reconciliation mismatch.
type ReconciliationKind int

const (
	// ReconcileExtraAdded: the literal diff marks a line "+" that the
	// computed alignment does not consider an addition.
	ReconcileExtraAdded ReconciliationKind = iota

	// ReconcileMissingAdded: the computed alignment found an addition
	// the literal diff omits.
	ReconcileMissingAdded

	// ReconcileExtraRemoved: the literal diff marks a line "-" that the
	// computed alignment does not consider a removal.
	ReconcileExtraRemoved

	// ReconcileMissingRemoved: the computed alignment found a removal
	// the literal diff omits.
	ReconcileMissingRemoved

	// ReconcileSummaryMismatch: the authored "+N/-M" summary disagrees
	// with the literal diff's own line counts.
	ReconcileSummaryMismatch
)

// String returns the kind's wire name.
func (k ReconciliationKind) String() string {
	switch k {
	case ReconcileExtraAdded:
		return "extra-added"
	case ReconcileMissingAdded:
		return "missing-added"
	case ReconcileExtraRemoved:
		return "extra-removed"
	case ReconcileMissingRemoved:
		return "missing-removed"
	case ReconcileSummaryMismatch:
		return "summary-mismatch"
	default:
		return "unknown"
	}
}
