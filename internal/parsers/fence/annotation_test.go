package fence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

func TestParseInfoString_Empty(t *testing.T) {
	ann, err := ParseInfoString("")
	require.NoError(t, err)
	assert.Empty(t, ann.Language)
	assert.Empty(t, ann.LineRanges)
	assert.Empty(t, ann.Tokens)
}

func TestParseInfoString_LanguageOnly(t *testing.T) {
	ann, err := ParseInfoString("jsx")
	require.NoError(t, err)
	assert.Equal(t, "jsx", ann.Language)
	assert.False(t, ann.ShowLineNumbers)
}

func TestParseInfoString_LineRanges(t *testing.T) {
	ann, err := ParseInfoString("tsx {1,3-5}")
	require.NoError(t, err)
	assert.Equal(t, "tsx", ann.Language)
	require.Len(t, ann.LineRanges, 2)
	assert.Equal(t, LineRange{Start: 1, End: 1}, ann.LineRanges[0])
	assert.Equal(t, LineRange{Start: 3, End: 5}, ann.LineRanges[1])
}

func TestParseInfoString_Filename(t *testing.T) {
	ann, err := ParseInfoString(`jsx filename=UserList.jsx`)
	require.NoError(t, err)
	assert.Equal(t, "UserList.jsx", ann.Filename)

	ann, err = ParseInfoString(`jsx filename="User List.jsx"`)
	require.NoError(t, err)
	assert.Equal(t, "User List.jsx", ann.Filename)
}

func TestParseInfoString_QuotedFilenameWithOtherAnnotations(t *testing.T) {
	// The quoted span must stay one field; the surrounding annotations
	// still parse on their own.
	ann, err := ParseInfoString(`jsx {1,3-5} filename="pages/User List.jsx" showLineNumbers`)
	require.NoError(t, err)
	assert.Equal(t, "pages/User List.jsx", ann.Filename)
	assert.True(t, ann.ShowLineNumbers)
	require.Len(t, ann.LineRanges, 2)
}

func TestParseInfoString_EmptyFilename(t *testing.T) {
	_, err := ParseInfoString("jsx filename=")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseInfoString_Tokens(t *testing.T) {
	ann, err := ParseInfoString("go /useMemo/ /useCallback/3")
	require.NoError(t, err)
	require.Len(t, ann.Tokens, 2)
	assert.Equal(t, domain.TokenHighlight{Token: "useMemo"}, ann.Tokens[0])
	assert.Equal(t, domain.TokenHighlight{Token: "useCallback", Occurrence: 3}, ann.Tokens[1])
}

func TestParseInfoString_ZeroTokenOccurrence(t *testing.T) {
	_, err := ParseInfoString("go /x/0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseInfoString_ShowLineNumbers(t *testing.T) {
	ann, err := ParseInfoString("jsx showLineNumbers {2}")
	require.NoError(t, err)
	assert.True(t, ann.ShowLineNumbers)
	require.Len(t, ann.LineRanges, 1)
}

func TestParseInfoString_DiffSummary(t *testing.T) {
	ann, err := ParseInfoString("diff +4/-2")
	require.NoError(t, err)
	require.NotNil(t, ann.DiffSummary)
	assert.Equal(t, 4, ann.DiffSummary.Added)
	assert.Equal(t, 2, ann.DiffSummary.Removed)
}

func TestParseInfoString_UnknownAnnotation(t *testing.T) {
	_, err := ParseInfoString("jsx wobble=yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "wobble=yes")
}

func TestParseInfoString_BadRange(t *testing.T) {
	tests := []string{
		"jsx {0}",
		"jsx {5-3}",
		"jsx {}",
	}
	for _, info := range tests {
		_, err := ParseInfoString(info)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, info)
	}
}
