// Package cli is the cobra-based command-line surface of antipat.
// Commands drive the core services through the driving ports.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/antipat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/antipat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/antipat/internal/connectors/filesystem"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
	"github.com/custodia-labs/antipat/internal/core/ports/driving"
	"github.com/custodia-labs/antipat/internal/core/services"
	"github.com/custodia-labs/antipat/internal/logger"
	"github.com/custodia-labs/antipat/internal/parsers/document"
	"github.com/custodia-labs/antipat/internal/parsers/stats"
)

// version is set by Execute.
var version = "dev"

// Global flags.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
	workersFlag int
)

// Services wired by initServices. Tests may replace them.
var (
	configStore        driven.ConfigStore
	ingestOrchestrator driving.IngestOrchestrator
)

var rootCmd = &cobra.Command{
	Use:   "antipat",
	Short: "Build and query a validated catalog of anti-pattern documents",
	Long: `antipat ingests a directory of anti-pattern documents, validates
them into a pattern catalog, and writes a serialized artifact plus a
validation report. The built catalog can be browsed, queried, and served
to documentation tooling.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.antipat)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.antipat/data)")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Parallel document workers (default from config, then 4)")
}

// Execute runs the CLI with the given build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// initServices wires the pipeline. Stores that touch disk beyond the
// config file are opened per command via openStore.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if configStore == nil {
		cs, err := configfile.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("opening config store: %w", err)
		}
		configStore = cs
	}

	if ingestOrchestrator == nil {
		workers := workersFlag
		if workers <= 0 {
			workers = configStore.GetInt("pipeline.workers")
		}
		ingestOrchestrator = services.NewIngestOrchestrator(
			filesystem.New(),
			document.New(),
			services.NewReconciler(),
			services.NewBuilder(stats.Parse),
			services.NewValidator(),
			workers,
		)
	}

	return nil
}

// openStore opens the persistent catalog store for commands that read or
// write the database. Callers own Close.
func openStore() (*sqlite.Store, error) {
	dir := dataDir
	if dir == "" {
		dir = configStore.GetString("storage.data_dir")
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	return store, nil
}
