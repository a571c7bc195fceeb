package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/solvik/daybook/internal/entry"
)

func TestPromptConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase n", "n\n", false},
		{"empty input", "\n", false},
		{"yes spelled out", "yes\n", false},
		{"y with spaces", "  y  \n", true},
		{"closed stdin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, stdout, _ := testDeps(t)
			d.Stdin = strings.NewReader(tt.input)
			SetDeps(d)
			defer ResetDeps()

			result := promptConfirmation()

			if !strings.Contains(stdout.String(), "Delete this entry? [y/N]:") {
				t.Errorf("Expected confirmation prompt, got: %s", stdout.String())
			}
			if result != tt.expected {
				t.Errorf("promptConfirmation() with input %q = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDeleteEntry_Confirmed(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	d.Stdin = strings.NewReader("y\n")
	SetDeps(d)
	defer ResetDeps()

	seeded := seedClosedEntry(t, d, "writing", time.Now().Add(-time.Hour), 20*time.Minute, entry.MoodFocus)

	deleteEntry(seeded.ID)

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	output := stdout.String()
	if !strings.Contains(output, "Entry to delete:") {
		t.Errorf("Expected preview of the entry, got: %s", output)
	}
	if !strings.Contains(output, "Deleted: writing") {
		t.Errorf("Expected deletion confirmation, got: %s", output)
	}

	store := openTestStore(t, d)
	if len(store.List()) != 0 {
		t.Errorf("Expected empty store, got %d entries", len(store.List()))
	}
}

func TestDeleteEntry_Cancelled(t *testing.T) {
	d, stdout, _ := testDeps(t)
	d.Stdin = strings.NewReader("n\n")
	SetDeps(d)
	defer ResetDeps()

	seeded := seedClosedEntry(t, d, "writing", time.Now().Add(-time.Hour), 20*time.Minute, entry.MoodFocus)

	deleteEntry(seeded.ID)

	if !strings.Contains(stdout.String(), "Deletion cancelled") {
		t.Errorf("Expected cancellation message, got: %s", stdout.String())
	}

	store := openTestStore(t, d)
	if len(store.List()) != 1 {
		t.Errorf("Entry should survive a cancelled deletion, got %d entries", len(store.List()))
	}
}

func TestDeleteEntry_YesFlag(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	deleteYesFlag = true
	t.Cleanup(func() { deleteYesFlag = false })

	seeded := seedClosedEntry(t, d, "writing", time.Now().Add(-time.Hour), 20*time.Minute, entry.MoodFocus)

	deleteEntry(seeded.ID)

	output := stdout.String()
	if strings.Contains(output, "[y/N]") {
		t.Errorf("--yes should skip the prompt, got: %s", output)
	}
	if !strings.Contains(output, "Deleted: writing") {
		t.Errorf("Expected deletion confirmation, got: %s", output)
	}
}

func TestDeleteEntry_ByPrefix(t *testing.T) {
	d, stdout, _ := testDeps(t)
	d.Stdin = strings.NewReader("y\n")
	SetDeps(d)
	defer ResetDeps()

	seeded := seedClosedEntry(t, d, "writing", time.Now().Add(-time.Hour), 20*time.Minute, entry.MoodFocus)

	deleteEntry(seeded.ID[:8])

	if !strings.Contains(stdout.String(), "Deleted: writing") {
		t.Errorf("Expected deletion by prefix, got: %s", stdout.String())
	}
}

func TestDeleteEntry_Untitled(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	deleteYesFlag = true
	t.Cleanup(func() { deleteYesFlag = false })

	startTimer(nil)
	store := openTestStore(t, d)
	active := store.ActiveEntry()
	if active == nil {
		t.Fatal("Expected an open entry")
	}

	deleteEntry(active.ID)

	if !strings.Contains(stdout.String(), "Deleted: (untitled)") {
		t.Errorf("Expected untitled placeholder, got: %s", stdout.String())
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	d, _, stderr := testDeps(t)
	exitCode := -1
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()

	deleteEntry("deadbeef")

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "No entry with id") {
		t.Errorf("Expected not-found error, got: %s", stderr.String())
	}
}

func TestShowEntryForDeletion(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	start := time.Date(2026, time.August, 12, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	e := entry.TimeEntry{
		ID:        "a1b2c3d4-ffff",
		Title:     "code review",
		StartTime: start,
		EndTime:   &end,
		Mood:      entry.MoodNeutral,
	}

	showEntryForDeletion(e, "24h")

	output := stdout.String()
	for _, want := range []string{"Entry to delete:", "a1b2c3d4", "09:00", "code review", "neutral"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q\nGot: %s", want, output)
		}
	}
}
