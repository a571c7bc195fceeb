package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/timeutil"
)

var (
	historyDateFlag    string
	historyGroupedFlag bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show entries for a day",
	Long: `Show the entries recorded on a given day, newest first, with the
day's completed total. With --grouped, entries sharing a title are
collapsed into per-activity totals.

The --date flag accepts 'today', 'yesterday', 'y', or YYYY-MM-DD.

Examples:
  daybook history
  daybook history --date yesterday
  daybook history --date 2026-08-12 --grouped`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showHistory()
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyDateFlag, "date", "d", "today", "day to show")
	historyCmd.Flags().BoolVarP(&historyGroupedFlag, "grouped", "g", false, "collapse entries into per-title totals")
}

// showHistory displays one day's entries
func showHistory() {
	date, err := timeutil.ParseDay(historyDateFlag)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := openServices()
	if svc == nil {
		return
	}

	printDay(svc.Entry.Day(date), historyGroupedFlag, svc.Config.Get().TimeFormat)
}
