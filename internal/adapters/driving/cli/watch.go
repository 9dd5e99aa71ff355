package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source-dir]",
	Short: "Rebuild the catalog whenever the source tree changes",
	Long: `Runs an initial build, persists it, then watches the source tree and
rebuilds on every change until interrupted. Rebuilds are throttled so a
burst of file events collapses into one pass.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rebuild := func(ctx context.Context) error {
		result, err := ingestOrchestrator.Ingest(ctx, dir)
		if err != nil {
			return err
		}
		if err := store.SaveCatalog(ctx, result.Catalog); err != nil {
			return err
		}
		if err := store.SaveReport(ctx, result.Report); err != nil {
			return err
		}
		cmd.Printf("Rebuilt: %d patterns, %d errors, %d warnings\n",
			result.Catalog.Len(),
			result.Report.Count(domain.SeverityError),
			result.Report.Count(domain.SeverityWarning))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rebuild(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	if err := watch.New(dir, rebuild).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	cmd.Println("Watch stopped.")
	return nil
}
