package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/config"
	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/service"
	"github.com/solvik/daybook/internal/storage"
	"github.com/solvik/daybook/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "A personal time tracker with mood tags and an AI diary",
	Long: `daybook tracks what you work on through named timers, tags every
finished session with how it felt, and can summarize a day into a
short diary entry via an OpenAI-compatible endpoint.

Usage:
  daybook                       Show today's entries
  daybook start [title]         Start a timer (title may be added on stop)
  daybook stop --mood focus     Stop the timer, tagging the session
  daybook status                Show the running timer
  daybook history --date y      Show another day
  daybook diary                 Write an AI diary for today
  daybook tui                   Launch the interactive interface

Moods: focus, neutral, tired`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openServices()
		if svc == nil {
			return
		}
		printDay(svc.Entry.Day(timeutil.Today()), false, svc.Config.Get().TimeFormat)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(diaryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"daybook version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// openServices builds the service layer from the configured paths.
// On failure it reports the error and returns nil; callers must bail.
func openServices() *service.Services {
	storePath, err := deps.StorePath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine storage location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil
	}

	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return nil
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return nil
	}

	store, err := storage.Open(storePath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the entry store")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that file is readable: %s\n", storePath)
		deps.Exit(1)
		return nil
	}

	return service.NewServicesWithStore(store, configPath, cfg)
}

// printDay writes a day's entries, or its per-title totals, to stdout
func printDay(day service.DayResult, grouped bool, timeFormat string) {
	heading := timeutil.FormatDay(day.Date)
	_, _ = fmt.Fprintln(deps.Stdout, heading)

	if len(day.Entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries")
		return
	}

	if grouped {
		for _, g := range day.Groups {
			title := g.Title
			if title == "" {
				title = "(untitled)"
			}
			line := fmt.Sprintf("  %-30s %10s  ×%d", title, timeutil.FormatDuration(g.Total), g.Count)
			if g.LatestMood != "" {
				line += "  " + string(g.LatestMood)
			}
			_, _ = fmt.Fprintln(deps.Stdout, line)
		}
	} else {
		for _, e := range day.Entries {
			_, _ = fmt.Fprintln(deps.Stdout, formatEntryLine(e, timeFormat))
		}
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n",
		timeutil.FormatDuration(day.Total), len(day.Entries), pluralizeEntries(len(day.Entries)))
}

// formatEntryLine renders one entry for list output, e.g.
// "a1b2c3d4  09:00–09:25  writing  25m 0s  focus"
func formatEntryLine(e entry.TimeEntry, timeFormat string) string {
	span := formatClock(e.StartTime, timeFormat)
	duration := "ongoing"
	if e.EndTime != nil {
		span += "–" + formatClock(*e.EndTime, timeFormat)
		duration = timeutil.FormatDuration(e.Duration())
	}

	title := e.Title
	if title == "" {
		title = "(untitled)"
	}

	line := fmt.Sprintf("  %s  %s  %s  %s", shortID(e.ID), span, title, duration)
	if e.Mood != "" {
		line += "  " + string(e.Mood)
	}
	return line
}

func formatClock(t time.Time, timeFormat string) string {
	if timeFormat == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// shortID truncates a UUID for display; list output stays readable
// while the prefix is still enough for edit and delete lookups.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pluralizeEntries(count int) string {
	if count == 1 {
		return "entry"
	}
	return "entries"
}

// findEntry resolves an id argument, accepting a unique prefix of the
// full id as typed from list output.
func findEntry(svc *service.Services, idArg string) (entry.TimeEntry, bool) {
	if e, ok := svc.Entry.Get(idArg); ok {
		return e, true
	}

	var match entry.TimeEntry
	found := 0
	for _, e := range svc.Store.List() {
		if len(idArg) >= 4 && len(e.ID) >= len(idArg) && e.ID[:len(idArg)] == idArg {
			match = e
			found++
		}
	}
	if found == 1 {
		return match, true
	}

	if found > 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Id prefix %q is ambiguous (%d matches)\n", idArg, found)
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id %q\n", idArg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Ids are shown in list output; a prefix of 4+ characters works")
	}
	deps.Exit(1)
	return entry.TimeEntry{}, false
}
