package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/timeutil"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer",
	Long: `Show whether a timer is running, what it is tracking, and for how
long.

Example:
  daybook status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showStatus()
	},
}

// showStatus displays the current timer state
func showStatus() {
	svc := openServices()
	if svc == nil {
		return
	}

	status := svc.Timer.Status()
	if !status.Running {
		_, _ = fmt.Fprintln(deps.Stdout, "No timer running")
		return
	}

	title := status.Entry.Title
	if title == "" {
		title = "(untitled)"
	}

	timeFormat := svc.Config.Get().TimeFormat
	_, _ = fmt.Fprintf(deps.Stdout, "Running: %s\n", title)
	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", formatClock(status.Entry.StartTime, timeFormat))
	_, _ = fmt.Fprintf(deps.Stdout, "Elapsed: %s\n", timeutil.FormatClock(status.ElapsedTime))
}
