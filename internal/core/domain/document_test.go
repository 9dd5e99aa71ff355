package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatternID(t *testing.T) {
	assert.Equal(t, PatternID("pattern-3"), NewPatternID(3))
	assert.Equal(t, PatternID("pattern-42"), NewPatternID(42))
}

func TestDocument_BlockID(t *testing.T) {
	doc := &Document{ID: "pattern-3", CategoryID: 3}
	assert.Equal(t, "pattern-3/example-1/avoid", doc.BlockID(1, "avoid"))
	assert.Equal(t, "pattern-3/example-2/good", doc.BlockID(2, "good"))
}

func TestDocument_BlockIDBeforeBuild(t *testing.T) {
	// Before the builder assigns an ID, the block id derives from the
	// category so parse-time errors still name the block.
	doc := &Document{CategoryID: 7}
	assert.Equal(t, "pattern-7/example-1/avoid", doc.BlockID(1, "avoid"))
}

func TestOccurrenceStat_Percentage(t *testing.T) {
	total := 213
	stat := &OccurrenceStat{Occurrences: 161, TotalOpportunities: &total}
	assert.InDelta(t, 0.756, stat.Percentage(), 0.001)

	assert.Zero(t, (&OccurrenceStat{Occurrences: 5}).Percentage())

	zero := 0
	assert.Zero(t, (&OccurrenceStat{Occurrences: 5, TotalOpportunities: &zero}).Percentage())

	var nilStat *OccurrenceStat
	assert.Zero(t, nilStat.Percentage())
}

func TestCatalog_Get(t *testing.T) {
	catalog := &Catalog{Documents: []Document{
		{ID: "pattern-1", Title: "One"},
		{ID: "pattern-2", Title: "Two"},
	}}

	doc, err := catalog.Get("pattern-2")
	require.NoError(t, err)
	assert.Equal(t, "Two", doc.Title)

	_, err = catalog.Get("pattern-9")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, catalog.Len())
}
