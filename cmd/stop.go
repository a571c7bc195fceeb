package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/timeutil"
)

var (
	stopMoodFlag  string
	stopTitleFlag string
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer",
	Long: `Stop the currently running timer, tagging the session with a mood.

A mood is required: focus, neutral, or tired. If the timer was started
without a title, one must be supplied with --title; a timer that
already has a title keeps it.

Examples:
  daybook stop --mood focus
  daybook stop --mood tired --title "email triage"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stopTimer()
	},
}

func init() {
	stopCmd.Flags().StringVarP(&stopMoodFlag, "mood", "m", "", "how the session felt: focus, neutral, or tired")
	stopCmd.Flags().StringVarP(&stopTitleFlag, "title", "t", "", "title for a session started without one")
	_ = stopCmd.MarkFlagRequired("mood")
}

// stopTimer stops the current timer and closes its entry
func stopTimer() {
	svc := openServices()
	if svc == nil {
		return
	}

	mood, err := entry.ParseMood(strings.ToLower(strings.TrimSpace(stopMoodFlag)))
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	e, err := svc.Timer.Stop(mood, stopTitleFlag)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTimerRunning):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No timer is running")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Start one with 'daybook start <title>'")
		case errors.Is(err, service.ErrEmptyTitle):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: This timer has no title")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Supply one with --title")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s (%s, %s)\n",
		e.Title, timeutil.FormatDuration(e.Duration()), e.Mood)
}
