package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range catalogCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["show"])
	assert.True(t, names["search"])
	assert.True(t, names["export"])
}

// buildInto runs a full build persisting two patterns into a fresh
// database directory and returns that directory.
func buildInto(t *testing.T) string {
	t.Helper()

	src := t.TempDir()
	writeSourceDoc(t, src, "001.md", 1, "Inline Object Props")
	writeSourceDoc(t, src, "002.md", 2, "Index As Key")
	db := t.TempDir()

	_, err := execute(t, "build", src,
		"--out", filepath.Join(t.TempDir(), "c.json"),
		"--db", "--data-dir", db)
	require.NoError(t, err)
	return db
}

func TestCatalogList_EmptyDatabase(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	output, err := execute(t, "catalog", "list", "--data-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, output, "No catalog has been built yet")
}

func TestCatalogList(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	db := buildInto(t)

	output, err := execute(t, "catalog", "list", "--data-dir", db)
	require.NoError(t, err)
	assert.Contains(t, output, "pattern-1")
	assert.Contains(t, output, "pattern-2")
	assert.Contains(t, output, "Total: 2 patterns")
}

func TestCatalogShow(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	db := buildInto(t)

	output, err := execute(t, "catalog", "show", "pattern-1", "--data-dir", db)
	require.NoError(t, err)
	assert.Contains(t, output, "Inline Object Props")
	assert.Contains(t, output, "Example 1")
	assert.Contains(t, output, "(computed)")
}

func TestCatalogShow_NotFound(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	db := buildInto(t)

	_, err := execute(t, "catalog", "show", "pattern-99", "--data-dir", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern not found")
}

func TestCatalogSearch(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	db := buildInto(t)

	output, err := execute(t, "catalog", "search", "index", "--data-dir", db)
	require.NoError(t, err)
	assert.Contains(t, output, "pattern-2")
	assert.NotContains(t, output, "pattern-1 ")

	output, err = execute(t, "catalog", "search", "zzz-no-match", "--data-dir", db)
	require.NoError(t, err)
	assert.Contains(t, output, "No patterns match")
}

func TestCatalogExport(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	db := buildInto(t)

	output, err := execute(t, "catalog", "export", "--data-dir", db)
	require.NoError(t, err)
	assert.Contains(t, output, `"run_id"`)
	assert.Contains(t, output, `"pattern-1"`)
}

func TestCatalogExport_EmptyDatabase(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "catalog", "export", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog has been built yet")
}
