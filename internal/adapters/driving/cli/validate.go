package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [source-dir]",
	Short: "Validate a source tree without writing an artifact",
	Long: `Runs the full pipeline and prints the validation report, but writes
no artifact. Exits non-zero when any error-severity finding occurred.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if ingestOrchestrator == nil {
		return errors.New("ingest service not configured")
	}

	result, err := ingestOrchestrator.Ingest(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	cmd.Printf("Validated %d patterns from %s\n", result.Catalog.Len(), args[0])
	printReport(cmd.OutOrStdout(), result.Report)

	if result.Report.HasErrors() {
		return fmt.Errorf("%d error finding(s)", result.Report.Count(domain.SeverityError))
	}
	return nil
}
