package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/antipat/internal/adapters/driving/tui"
	"github.com/custodia-labs/antipat/internal/core/services"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the pattern catalog interactively",
	Long: `Open an interactive terminal browser over the persisted pattern
catalog. Navigate the pattern list, filter by title, and inspect each
entry's examples, diffs, and occurrence statistics.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Restore the terminal if the model panics.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "tui crashed: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	app, err := tui.NewApp(&tui.Ports{
		Catalog: services.NewCatalogService(store),
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
