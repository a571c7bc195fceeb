package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/service"
)

var (
	editTitleFlag    string
	editStartFlag    string
	editEndFlag      string
	editMoodFlag     string
	editClearEndFlag bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing entry",
	Long: `Edit an entry's title, times, or mood. The id comes from list
output; a prefix of 4 or more characters is enough.

Times accept HH:MM (kept on the entry's own day) or a full
"YYYY-MM-DD HH:MM". --clear-end reopens a closed entry, which also
clears its mood and fails while another timer is running.

Examples:
  daybook edit a1b2c3d4 --title "writing report"
  daybook edit a1b2c3d4 --start 09:00 --end 09:45
  daybook edit a1b2c3d4 --mood tired
  daybook edit a1b2c3d4 --clear-end`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editEntry(cmd, args[0])
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitleFlag, "title", "", "new title")
	editCmd.Flags().StringVar(&editStartFlag, "start", "", "new start time (HH:MM or YYYY-MM-DD HH:MM)")
	editCmd.Flags().StringVar(&editEndFlag, "end", "", "new end time (HH:MM or YYYY-MM-DD HH:MM)")
	editCmd.Flags().StringVar(&editMoodFlag, "mood", "", "new mood: focus, neutral, or tired")
	editCmd.Flags().BoolVar(&editClearEndFlag, "clear-end", false, "reopen the entry")
}

// editEntry applies the requested changes to one entry
func editEntry(cmd *cobra.Command, idArg string) {
	svc := openServices()
	if svc == nil {
		return
	}

	current, ok := findEntry(svc, idArg)
	if !ok {
		return
	}

	edit := service.EntryEdit{ClearEnd: editClearEndFlag}
	changed := editClearEndFlag

	if cmd.Flags().Changed("title") {
		title := editTitleFlag
		edit.Title = &title
		changed = true
	}

	if editStartFlag != "" {
		t, err := parseEditTime(editStartFlag, current.StartTime)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		edit.Start = &t
		changed = true
	}

	if editEndFlag != "" {
		if editClearEndFlag {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: --end and --clear-end cannot be combined")
			deps.Exit(1)
			return
		}
		t, err := parseEditTime(editEndFlag, current.StartTime)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		edit.End = &t
		changed = true
	}

	if editMoodFlag != "" {
		mood, err := entry.ParseMood(strings.ToLower(strings.TrimSpace(editMoodFlag)))
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		edit.Mood = &mood
		changed = true
	}

	if !changed {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing to change")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Pass at least one of --title, --start, --end, --mood, --clear-end")
		deps.Exit(1)
		return
	}

	updated, err := svc.Entry.Edit(current.ID, edit)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", strings.TrimSpace(formatEntryLine(*updated, svc.Config.Get().TimeFormat)))
}

// parseEditTime parses a time flag value. A bare HH:MM stays on the
// same day as ref.
func parseEditTime(value string, ref time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation("15:04", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM or YYYY-MM-DD HH:MM)", value)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
