package domain

// Severity classifies a validation finding.
type Severity int

const (
	// SeverityInfo is informational.
	SeverityInfo Severity = iota

	// SeverityWarning does not fail the run.
	SeverityWarning

	// SeverityError makes the run exit non-zero.
	SeverityError
)

// String returns the severity's wire name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// FindingCode identifies the check that produced a finding.
type FindingCode string

const (
	// FindingMissingCounterpart: an example lacks its avoid or good snippet.
	FindingMissingCounterpart FindingCode = "missing-counterpart"

	// FindingUnresolvedHighlight: a highlight no longer resolves at
	// catalog scope.
	FindingUnresolvedHighlight FindingCode = "unresolved-highlight"

	// FindingDuplicateTitle: two documents share a title. Catalog entries
	// must be distinguishable; also flags conflicting near-duplicate
	// revisions of the same pattern.
	FindingDuplicateTitle FindingCode = "duplicate-title"

	// FindingMalformedReference: a references URL is not well-formed.
	FindingMalformedReference FindingCode = "malformed-reference"

	// FindingDuplicateCategory: two input documents share a category id;
	// the later one in sort order was excluded from the catalog.
	FindingDuplicateCategory FindingCode = "duplicate-category"

	// FindingParseFailure: a document failed structural parsing and was
	// excluded from the catalog.
	FindingParseFailure FindingCode = "parse-failure"

	// FindingDiffMismatch: a reconciliation warning attached to a
	// surviving example.
	FindingDiffMismatch FindingCode = "diff-mismatch"

	// FindingSummaryMismatch: an authored "+N/-M" summary disagrees with
	// its diff's line counts.
	FindingSummaryMismatch FindingCode = "summary-mismatch"
)

// Finding is one validation result. Findings never abort the run; they
// are the intended output.
type Finding struct {
	// Severity classifies the finding.
	Severity Severity

	// Code identifies the producing check.
	Code FindingCode

	// PatternID is the offending entry's stable identifier. Empty for
	// documents that never made it into the catalog.
	PatternID PatternID

	// EntityID narrows the finding to a block or example when relevant,
	// e.g. "pattern-3/example-1/avoid".
	EntityID string

	// SourcePath is the originating file.
	SourcePath string

	// Message is a human-readable description.
	Message string
}

// FailedDocument records a source document that was excluded from the
// catalog by a structural error.
type FailedDocument struct {
	// SourcePath is the unparseable file.
	SourcePath string

	// Reason is the structural error's message.
	Reason string
}

// ValidationReport aggregates findings across the catalog. The run always
// completes and returns a report; callers decide pass/fail thresholds.
type ValidationReport struct {
	// RunID matches the catalog's ingestion run.
	RunID string

	// Findings is the ordered list of validation results.
	Findings []Finding

	// Failed lists documents excluded by structural errors.
	Failed []FailedDocument
}

// Add appends a finding.
func (r *ValidationReport) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// AddFailed records an excluded document.
func (r *ValidationReport) AddFailed(path string, reason string) {
	r.Failed = append(r.Failed, FailedDocument{SourcePath: path, Reason: reason})
}

// Count returns the number of findings with the given severity.
func (r *ValidationReport) Count(sev Severity) int {
	n := 0
	for i := range r.Findings {
		if r.Findings[i].Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error-severity finding exists.
// Failed documents count as errors.
func (r *ValidationReport) HasErrors() bool {
	return len(r.Failed) > 0 || r.Count(SeverityError) > 0
}
