package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/antipat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/antipat/internal/connectors/filesystem"
	"github.com/custodia-labs/antipat/internal/core/services"
	"github.com/custodia-labs/antipat/internal/parsers/document"
	"github.com/custodia-labs/antipat/internal/parsers/stats"
)

// setupTestServices wires the package services against temp directories
// so commands never touch the user's home directory.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	cs, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = cs

	ingestOrchestrator = services.NewIngestOrchestrator(
		filesystem.New(),
		document.New(),
		services.NewReconciler(),
		services.NewBuilder(stats.Parse),
		services.NewValidator(),
		1,
	)

	return func() {
		configStore = nil
		ingestOrchestrator = nil
		dataDir = ""
		buildOut = "catalog.json"
		buildFormat = ""
		buildToDB = false
		catalogExportOut = "-"
		catalogExportFormat = ""
	}
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeSourceDoc drops a well-formed pattern document into dir.
func writeSourceDoc(t *testing.T, dir, name string, categoryID int, title string) {
	t.Helper()

	content := "# " + strconv.Itoa(categoryID) + ". " + title + "\n\n" +
		"Some introduction prose.\n\n" +
		"## Examples\n\n" +
		"### 1. Case\n\n" +
		"🛑 Avoid:\n\n```js\nold()\n```\n\n" +
		"✅ Good:\n\n```js\nnew()\n```\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
