package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/antipat/internal/adapters/driven/export"
	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driving"
)

var buildCmd = &cobra.Command{
	Use:   "build [source-dir]",
	Short: "Build the pattern catalog from a source tree",
	Long: `Runs the full pipeline over a directory of anti-pattern documents:
parse, extract, reconcile, build, validate. Writes the serialized catalog
artifact and prints the validation report. Exits non-zero when any
error-severity finding occurred.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

// Build flags.
var (
	buildOut    string
	buildFormat string
	buildToDB   bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "catalog.json", "Artifact destination path (\"-\" for stdout)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", "", "Artifact format: json or yaml (default from config, then json)")
	buildCmd.Flags().BoolVar(&buildToDB, "db", false, "Also persist the catalog to the local database")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	result, err := ingestOrchestrator.Ingest(ctx, args[0])
	if err != nil {
		// NoContentFound is the one fatal case: no artifact is produced.
		return fmt.Errorf("build failed: %w", err)
	}

	if err := writeArtifact(cmd, result); err != nil {
		return err
	}

	if buildToDB {
		if err := persistResult(ctx, result); err != nil {
			return err
		}
		cmd.Println("Catalog persisted to local database.")
	}

	cmd.Printf("Catalog built: %d patterns\n", result.Catalog.Len())
	printReport(cmd.OutOrStdout(), result.Report)

	if result.Report.HasErrors() {
		return fmt.Errorf("%d error finding(s)", result.Report.Count(domain.SeverityError))
	}
	return nil
}

// writeArtifact serializes the catalog and report to the --out path.
func writeArtifact(cmd *cobra.Command, result *driving.IngestResult) error {
	format := buildFormat
	if format == "" {
		format = configStore.GetString("export.format")
	}
	exporter, err := export.ForFormat(format)
	if err != nil {
		return err
	}

	if buildOut == "-" {
		return exporter.Export(cmd.OutOrStdout(), result.Catalog, result.Report)
	}

	f, err := os.Create(buildOut)
	if err != nil {
		return fmt.Errorf("creating artifact: %w", err)
	}
	defer f.Close()

	if err := exporter.Export(f, result.Catalog, result.Report); err != nil {
		return err
	}
	cmd.Printf("Artifact written to %s (%s)\n", buildOut, exporter.Format())
	return nil
}

// persistResult saves the catalog and report to the sqlite store.
func persistResult(ctx context.Context, result *driving.IngestResult) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveCatalog(ctx, result.Catalog); err != nil {
		return fmt.Errorf("persisting catalog: %w", err)
	}
	if err := store.SaveReport(ctx, result.Report); err != nil {
		return fmt.Errorf("persisting report: %w", err)
	}
	return nil
}
