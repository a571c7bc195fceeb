package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	Long: `Launch the interactive terminal interface for daybook.

Views available:
  - Timer: start and stop timers, with mood tagging on stop
  - History: browse entries per day, grouped totals, delete
  - Diary: generate an AI diary entry for a day
  - Settings: theme, clock format, and the AI endpoint

Closing the main window with 'q' shrinks the app to a compact timer
strip; press 'q' again there to really quit, or 'Q' anywhere.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

// runTUI initializes and runs the TUI application
func runTUI() {
	services := openServices()
	if services == nil {
		return
	}

	if err := tui.Run(services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}
