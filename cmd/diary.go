package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/ai"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/timeutil"
)

var diaryDateFlag string

// diaryCmd represents the diary command
var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Write an AI diary entry for a day",
	Long: `Send a day's recorded activities to the configured OpenAI-compatible
endpoint and print the short reflective diary entry it writes back.

An API key must be configured first; see 'daybook config'. The --date
flag accepts 'today', 'yesterday', 'y', or YYYY-MM-DD.

Examples:
  daybook diary
  daybook diary --date yesterday`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeDiary()
	},
}

func init() {
	diaryCmd.Flags().StringVarP(&diaryDateFlag, "date", "d", "today", "day to summarize")
}

// writeDiary generates and prints a diary for one day
func writeDiary() {
	date, err := timeutil.ParseDay(diaryDateFlag)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := openServices()
	if svc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, err := svc.Diary.Generate(ctx, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoEntries):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No entries recorded for %s\n", date.Format("2006-01-02"))
		case errors.Is(err, ai.ErrMissingAPIKey):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No API key configured")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set one with 'daybook config --api-key <key>'")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, timeutil.FormatDay(date))
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, text)
}
