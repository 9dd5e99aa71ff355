package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

const sampleDoc = `# 3. Inline Object Props

Passing a fresh object literal on every render defeats memoization
downstream.

References:
- https://react.dev/reference/react/memo
- https://example.com/rendering-guide

## Examples

### 1. In List Rows

🛑 Avoid creating the style object inline:

` + "```jsx {2} filename=Row.jsx" + `
function Row({ item }) {
  return <Cell style={{ padding: 4 }} value={item} />;
}
` + "```" + `

Each render allocates a new object, so Cell re-renders every time.

✅ Hoist the object out of the component:

` + "```jsx {1} filename=Row.jsx" + `
const cellStyle = { padding: 4 };
function Row({ item }) {
  return <Cell style={cellStyle} value={item} />;
}
` + "```" + `

The reference is now stable across renders.

Diff view:

` + "```diff +1/-0" + `
+ const cellStyle = { padding: 4 };
  function Row({ item }) {
` + "```" + `

### 2. In Effects

🛑 Avoid:

` + "```jsx" + `
useEffect(() => run({ deep: true }), [{ deep: true }]);
` + "```" + `

## Notes

This mistake appeared 161 out of 213 times in the audited codebase.
`

func parseString(t *testing.T, path, content string) (*domain.Document, error) {
	t.Helper()
	p := New()
	return p.Parse(domain.RawDocument{Path: path, Content: []byte(content)})
}

func TestParse_FullDocument(t *testing.T) {
	doc, err := parseString(t, "docs/003-inline-object-props.md", sampleDoc)
	require.NoError(t, err)

	assert.Equal(t, 3, doc.CategoryID)
	assert.Equal(t, "Inline Object Props", doc.Title)
	assert.Contains(t, doc.Introduction, "defeats memoization")
	assert.NotContains(t, doc.Introduction, "react.dev")
	assert.Equal(t, []string{
		"https://react.dev/reference/react/memo",
		"https://example.com/rendering-guide",
	}, doc.References)
	assert.Equal(t, "docs/003-inline-object-props.md", doc.SourcePath)
	assert.Contains(t, doc.Notes, "161 out of 213 times")
	require.Len(t, doc.Examples, 2)
}

func TestParse_ExampleSnippets(t *testing.T) {
	doc, err := parseString(t, "a.md", sampleDoc)
	require.NoError(t, err)

	ex := doc.Examples[0]
	assert.Equal(t, 1, ex.Index)
	assert.Equal(t, "In List Rows", ex.Label)

	require.NotNil(t, ex.Avoid)
	assert.Equal(t, "jsx", ex.Avoid.Language)
	assert.Equal(t, "Row.jsx", ex.Avoid.Filename)
	assert.Equal(t, []int{2}, ex.Avoid.HighlightedLines)
	assert.Len(t, ex.Avoid.SourceLines, 3)

	require.NotNil(t, ex.Good)
	assert.Equal(t, []int{1}, ex.Good.HighlightedLines)
	assert.Len(t, ex.Good.SourceLines, 4)

	require.NotNil(t, ex.Diff)
	assert.Equal(t, []string{"const cellStyle = { padding: 4 };"}, ex.Diff.AddedLines)
	assert.Empty(t, ex.Diff.RemovedLines)
	require.NotNil(t, ex.Diff.Summary)
	assert.Equal(t, 1, ex.Diff.Summary.Added)
	assert.Equal(t, 0, ex.Diff.Summary.Removed)

	assert.Contains(t, ex.RationaleAvoid, "allocates a new object")
	assert.NotContains(t, ex.RationaleAvoid, "Hoist the object")
	assert.Contains(t, ex.RationaleGood, "stable across renders")
	assert.NotContains(t, ex.RationaleGood, "Diff view")
}

func TestParse_AvoidOnlyExample(t *testing.T) {
	doc, err := parseString(t, "a.md", sampleDoc)
	require.NoError(t, err)

	ex := doc.Examples[1]
	assert.Equal(t, 2, ex.Index)
	assert.Equal(t, "In Effects", ex.Label)
	require.NotNil(t, ex.Avoid)
	assert.Nil(t, ex.Good)
	assert.Nil(t, ex.Diff)
}

func TestParse_MissingTitleHeading(t *testing.T) {
	_, err := parseString(t, "bad.md", "Some prose without a heading.\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestParse_NonNumberedHeading(t *testing.T) {
	_, err := parseString(t, "bad.md", "# Inline Object Props\n\n## Examples\n\n### 1. X\n\n🛑\n\n```js\nx\n```\n")
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := parseString(t, "empty.md", "\n\n  \n")
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_NoExamples(t *testing.T) {
	_, err := parseString(t, "intro-only.md", "# 9. Title Only\n\nJust prose, no examples section.\n")
	assert.ErrorIs(t, err, domain.ErrEmptyCatalogEntry)
}

func TestParse_EmptyExamplesSection(t *testing.T) {
	_, err := parseString(t, "a.md", "# 9. T\n\n## Examples\n\nNo sub-headings here.\n")
	assert.ErrorIs(t, err, domain.ErrEmptyCatalogEntry)
}

func TestParse_MarkerWithoutFence(t *testing.T) {
	content := "# 1. T\n\n## Examples\n\n### 1. X\n\n🛑 Avoid this approach entirely.\n"
	_, err := parseString(t, "a.md", content)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingSnippet)
}

func TestParse_UnresolvableHighlight(t *testing.T) {
	content := "# 5. T\n\n## Examples\n\n### 1. X\n\n🛑 Avoid:\n\n```jsx {99}\nshort body\n```\n"
	_, err := parseString(t, "a.md", content)
	require.Error(t, err)

	var highlightErr *domain.HighlightError
	require.True(t, errors.As(err, &highlightErr))
	assert.Equal(t, "pattern-5/example-1/avoid", highlightErr.BlockID)
	assert.Equal(t, 99, highlightErr.Line)
}

func TestParse_HeadingsInsideFencesIgnored(t *testing.T) {
	content := "# 2. T\n\n## Examples\n\n### 1. X\n\n🛑 Avoid:\n\n```md\n### 7. Not a real heading\n## Notes\n```\n"
	doc, err := parseString(t, "a.md", content)
	require.NoError(t, err)
	require.Len(t, doc.Examples, 1)
	assert.Equal(t, 1, doc.Examples[0].Index)
	assert.Empty(t, doc.Notes)
}

func TestParse_CRLFNormalised(t *testing.T) {
	content := "# 4. T\r\n\r\n## Examples\r\n\r\n### 1. X\r\n\r\n🛑 Avoid:\r\n\r\n```js\r\nx\r\n```\r\n"
	doc, err := parseString(t, "a.md", content)
	require.NoError(t, err)
	require.Len(t, doc.Examples, 1)
	assert.Equal(t, []string{"x"}, doc.Examples[0].Avoid.SourceLines)
}

func TestParse_NotesCaseInsensitive(t *testing.T) {
	content := "# 4. T\n\n## examples\n\n### 1. X\n\n🛑 Avoid:\n\n```js\nx\n```\n\n## NOTES\n\nSeen 3 times.\n"
	doc, err := parseString(t, "a.md", content)
	require.NoError(t, err)
	assert.Equal(t, "Seen 3 times.", doc.Notes)
}
