package domain

import "fmt"

// PatternID is the stable identifier of a catalog entry.
// It is derived from the document's category id and is therefore
// reproducible across ingestion runs.
type PatternID string

// NewPatternID derives the stable identifier for a category.
func NewPatternID(categoryID int) PatternID {
	return PatternID(fmt.Sprintf("pattern-%d", categoryID))
}

// Document is one catalogued anti-pattern: a parsed source document with
// its examples, references, and optional occurrence statistics.
type Document struct {
	// ID is the stable pattern identifier. Empty until the catalog
	// builder assigns it.
	ID PatternID

	// CategoryID is the numeric prefix of the document's top heading.
	// Unique across the catalog.
	CategoryID int

	// Title is the heading text after the numeric prefix.
	Title string

	// Introduction is the prose before the examples section. Optional.
	Introduction string

	// References is the ordered list of citation URLs.
	References []string

	// Examples is the ordered sequence of before/after illustrations.
	// Non-empty for a well-formed document.
	Examples []Example

	// Notes is the free-text closing section. Optional.
	Notes string

	// Stats holds occurrence counts parsed from Notes, when present.
	Stats *OccurrenceStat

	// SourcePath is the originating file, carried for findings.
	SourcePath string
}

// Example is one before/after illustration inside a Document.
type Example struct {
	// Index is 1-based and unique within the document.
	Index int

	// Label is the example's sub-heading text, e.g. "In Pages".
	Label string

	// Avoid is the problematic snippet.
	Avoid *CodeBlock

	// Good is the corrected snippet.
	Good *CodeBlock

	// Diff is the line-level delta between Avoid and Good. Either the
	// document's literal diff block or the reconciler's computed
	// alignment when no literal block exists.
	Diff *DiffBlock

	// RationaleAvoid is the prose following the avoid snippet.
	RationaleAvoid string

	// RationaleGood is the prose following the good snippet.
	RationaleGood string

	// Warnings holds non-fatal reconciliation mismatches between the
	// literal diff and the computed alignment.
	Warnings []ReconciliationWarning
}

// OccurrenceStat counts how often a pattern was observed in an external
// codebase. Computed once at catalog-build time from the document's
// declared counts and immutable afterwards.
type OccurrenceStat struct {
	// Occurrences is the number of observed instances.
	Occurrences int

	// TotalOpportunities is the number of places the pattern could have
	// occurred. Nil when the source only declared "N times".
	TotalOpportunities *int
}

// Percentage returns occurrences divided by total opportunities.
// It is always recomputed, never stored. Returns 0 when the total is
// unknown or zero.
func (s *OccurrenceStat) Percentage() float64 {
	if s == nil || s.TotalOpportunities == nil || *s.TotalOpportunities == 0 {
		return 0
	}
	return float64(s.Occurrences) / float64(*s.TotalOpportunities)
}

// BlockID names a code block within a document for findings and errors,
// e.g. "pattern-3/example-1/avoid".
func (d *Document) BlockID(exampleIndex int, role string) string {
	id := d.ID
	if id == "" {
		id = NewPatternID(d.CategoryID)
	}
	return fmt.Sprintf("%s/example-%d/%s", id, exampleIndex, role)
}
