package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/parsers/stats"
)

func doc(categoryID int, title, path string) *domain.Document {
	return &domain.Document{
		CategoryID: categoryID,
		Title:      title,
		SourcePath: path,
		Examples:   []domain.Example{{Index: 1, Label: "X"}},
	}
}

func TestBuild_OrderAndIDs(t *testing.T) {
	b := NewBuilder(stats.Parse)
	report := &domain.ValidationReport{}

	catalog := b.Build([]*domain.Document{
		doc(7, "Seven", "docs/g.md"),
		doc(2, "Two", "docs/b.md"),
		doc(5, "Five", "docs/e.md"),
	}, "run-1", report)

	require.Len(t, catalog.Documents, 3)
	assert.Equal(t, "run-1", catalog.RunID)
	assert.False(t, catalog.BuiltAt.IsZero())

	assert.Equal(t, domain.PatternID("pattern-2"), catalog.Documents[0].ID)
	assert.Equal(t, domain.PatternID("pattern-5"), catalog.Documents[1].ID)
	assert.Equal(t, domain.PatternID("pattern-7"), catalog.Documents[2].ID)
	assert.Empty(t, report.Findings)
}

func TestBuild_Reproducible(t *testing.T) {
	b := NewBuilder(stats.Parse)

	first := b.Build([]*domain.Document{
		doc(3, "A", "x.md"), doc(1, "B", "y.md"),
	}, "r", &domain.ValidationReport{})

	second := b.Build([]*domain.Document{
		doc(1, "B", "y.md"), doc(3, "A", "x.md"),
	}, "r", &domain.ValidationReport{})

	require.Len(t, second.Documents, len(first.Documents))
	for i := range first.Documents {
		assert.Equal(t, first.Documents[i].ID, second.Documents[i].ID)
		assert.Equal(t, first.Documents[i].Title, second.Documents[i].Title)
	}
}

func TestBuild_DuplicateCategoryExcludesLaterPath(t *testing.T) {
	b := NewBuilder(stats.Parse)
	report := &domain.ValidationReport{}

	catalog := b.Build([]*domain.Document{
		doc(4, "Later", "docs/zzz.md"),
		doc(4, "Earlier", "docs/aaa.md"),
	}, "r", report)

	// Sort order is (categoryId, sourcePath); aaa.md wins.
	require.Len(t, catalog.Documents, 1)
	assert.Equal(t, "Earlier", catalog.Documents[0].Title)

	require.Len(t, report.Findings, 1)
	f := report.Findings[0]
	assert.Equal(t, domain.SeverityError, f.Severity)
	assert.Equal(t, domain.FindingDuplicateCategory, f.Code)
	assert.Equal(t, "docs/zzz.md", f.SourcePath)
	assert.Contains(t, f.Message, "docs/aaa.md")

	require.Len(t, report.Failed, 1)
	assert.Equal(t, "docs/zzz.md", report.Failed[0].SourcePath)
	assert.True(t, report.HasErrors())
}

func TestBuild_StatsParsedFromNotes(t *testing.T) {
	b := NewBuilder(stats.Parse)

	d := doc(1, "T", "a.md")
	d.Notes = "Implemented wrong 161 out of 213 times."

	catalog := b.Build([]*domain.Document{d}, "r", &domain.ValidationReport{})
	require.Len(t, catalog.Documents, 1)

	stat := catalog.Documents[0].Stats
	require.NotNil(t, stat)
	assert.Equal(t, 161, stat.Occurrences)
	require.NotNil(t, stat.TotalOpportunities)
	assert.Equal(t, 213, *stat.TotalOpportunities)
}

func TestBuild_NoNotesNoStats(t *testing.T) {
	b := NewBuilder(stats.Parse)

	catalog := b.Build([]*domain.Document{doc(1, "T", "a.md")}, "r", &domain.ValidationReport{})
	require.Len(t, catalog.Documents, 1)
	assert.Nil(t, catalog.Documents[0].Stats)
}

func TestBuild_InputDocumentsUntouched(t *testing.T) {
	b := NewBuilder(stats.Parse)

	d := doc(6, "T", "a.md")
	b.Build([]*domain.Document{d}, "r", &domain.ValidationReport{})
	assert.Empty(t, d.ID)
}
