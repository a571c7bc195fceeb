package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solvik/daybook/internal/entry"
)

var deleteYesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Long: `Delete an entry by id. The id comes from list output; a prefix of
4 or more characters is enough. A confirmation prompt is shown unless
--yes is specified.

Examples:
  daybook delete a1b2c3d4
  daybook delete a1b2c3d4 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteEntry(args[0])
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYesFlag, "yes", "y", false, "skip confirmation prompt")
}

// deleteEntry handles the deletion of an entry
func deleteEntry(idArg string) {
	svc := openServices()
	if svc == nil {
		return
	}

	e, ok := findEntry(svc, idArg)
	if !ok {
		return
	}

	showEntryForDeletion(e, svc.Config.Get().TimeFormat)

	if !deleteYesFlag {
		if !promptConfirmation() {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	if err := svc.Entry.Delete(e.ID); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to delete entry: %v\n", err)
		deps.Exit(1)
		return
	}

	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", title)
}

// showEntryForDeletion displays the entry that is about to be deleted
func showEntryForDeletion(e entry.TimeEntry, timeFormat string) {
	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintln(deps.Stdout, formatEntryLine(e, timeFormat))
}

// promptConfirmation asks the user to confirm deletion
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation() bool {
	_, _ = fmt.Fprint(deps.Stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
