package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/antipat/internal/adapters/driven/export"
	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/services"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the persisted pattern catalog",
	Long:  `List, view, search, or export entries from the locally persisted catalog.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued patterns",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [pattern-id]",
	Short: "Show one pattern entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search patterns by title or introduction",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export the persisted catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

// Export flags.
var (
	catalogExportOut    string
	catalogExportFormat string
)

func init() {
	catalogExportCmd.Flags().StringVarP(&catalogExportOut, "out", "o", "-", "Destination path (\"-\" for stdout)")
	catalogExportCmd.Flags().StringVarP(&catalogExportFormat, "format", "f", "", "Format: json or yaml")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := services.NewCatalogService(store).List(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No catalog has been built yet. Run: antipat build <source-dir> --db")
			return nil
		}
		return fmt.Errorf("failed to list patterns: %w", err)
	}

	printDocuments(cmd, docs)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := services.NewCatalogService(store).Get(context.Background(), domain.PatternID(args[0]))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("pattern not found: %s", args[0])
		}
		return fmt.Errorf("failed to get pattern: %w", err)
	}

	cmd.Printf("%s  %d. %s\n", doc.ID, doc.CategoryID, doc.Title)
	cmd.Printf("  Source: %s\n", doc.SourcePath)
	if doc.Introduction != "" {
		cmd.Printf("\n%s\n", doc.Introduction)
	}
	for i := range doc.Examples {
		ex := &doc.Examples[i]
		cmd.Printf("\nExample %d: %s\n", ex.Index, ex.Label)
		if ex.Diff != nil {
			cmd.Printf("  Diff: +%d/-%d lines", len(ex.Diff.AddedLines), len(ex.Diff.RemovedLines))
			if ex.Diff.Computed {
				cmd.Printf(" (computed)")
			}
			cmd.Println()
		}
		for _, w := range ex.Warnings {
			cmd.Printf("  Warning: %s\n", w.Message)
		}
	}
	if doc.Stats != nil {
		cmd.Printf("\nOccurrences: %d", doc.Stats.Occurrences)
		if doc.Stats.TotalOpportunities != nil {
			cmd.Printf(" out of %d (%.1f%%)", *doc.Stats.TotalOpportunities, doc.Stats.Percentage()*100)
		}
		cmd.Println()
	}
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := services.NewCatalogService(store).Search(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No catalog has been built yet. Run: antipat build <source-dir> --db")
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No patterns match %q\n", args[0])
		return nil
	}
	printDocuments(cmd, docs)
	return nil
}

func runCatalogExport(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no catalog has been built yet")
		}
		return fmt.Errorf("loading catalog: %w", err)
	}
	report, err := store.LoadReport(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("loading report: %w", err)
	}

	exporter, err := export.ForFormat(catalogExportFormat)
	if err != nil {
		return err
	}

	if catalogExportOut == "-" {
		return exporter.Export(cmd.OutOrStdout(), catalog, report)
	}
	f, err := os.Create(catalogExportOut)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	return exporter.Export(f, catalog, report)
}

// printDocuments renders a short listing.
func printDocuments(cmd *cobra.Command, docs []domain.Document) {
	for i := range docs {
		doc := &docs[i]
		cmd.Printf("  %-14s %3d. %s (%d examples)\n", doc.ID, doc.CategoryID, doc.Title, len(doc.Examples))
	}
	cmd.Printf("Total: %d patterns\n", len(docs))
}
