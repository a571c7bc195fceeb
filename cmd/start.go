package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/service"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [title]",
	Short: "Start a timer",
	Long: `Start a timer for an activity. The title is optional; an untitled
timer can be given its title when it is stopped.

Only one timer can run at a time.

Examples:
  daybook start writing report
  daybook start`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		startTimer(args)
	},
}

// startTimer starts a new timer with the given title words
func startTimer(args []string) {
	svc := openServices()
	if svc == nil {
		return
	}

	title := strings.TrimSpace(strings.Join(args, " "))

	e, err := svc.Timer.Start(title)
	if err != nil {
		if errors.Is(err, service.ErrTimerAlreadyRunning) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: A timer is already running")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Stop it first with 'daybook stop --mood <mood>'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	if e.Title == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Timer started (untitled) at %s\n", e.StartTime.Format("15:04"))
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Give it a title when stopping with --title")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Timer started: %s at %s\n", e.Title, e.StartTime.Format("15:04"))
	}
}
