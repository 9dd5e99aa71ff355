package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestValidationReport_Count(t *testing.T) {
	report := &ValidationReport{}
	report.Add(Finding{Severity: SeverityError, Code: FindingMissingCounterpart})
	report.Add(Finding{Severity: SeverityWarning, Code: FindingDuplicateTitle})
	report.Add(Finding{Severity: SeverityWarning, Code: FindingDiffMismatch})

	assert.Equal(t, 1, report.Count(SeverityError))
	assert.Equal(t, 2, report.Count(SeverityWarning))
	assert.Equal(t, 0, report.Count(SeverityInfo))
}

func TestValidationReport_HasErrors(t *testing.T) {
	report := &ValidationReport{}
	assert.False(t, report.HasErrors())

	report.Add(Finding{Severity: SeverityWarning})
	assert.False(t, report.HasErrors(), "warnings alone do not fail the run")

	report.Add(Finding{Severity: SeverityError})
	assert.True(t, report.HasErrors())
}

func TestValidationReport_FailedDocumentsAreErrors(t *testing.T) {
	report := &ValidationReport{}
	report.AddFailed("broken.md", "missing heading")

	assert.True(t, report.HasErrors())
	assert.Len(t, report.Failed, 1)
	assert.Equal(t, "broken.md", report.Failed[0].SourcePath)
}
