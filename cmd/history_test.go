package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/solvik/daybook/internal/entry"
)

// setHistoryFlags sets the history command's flag values and restores
// the defaults on cleanup
func setHistoryFlags(t *testing.T, date string, grouped bool) {
	t.Helper()
	historyDateFlag = date
	historyGroupedFlag = grouped
	t.Cleanup(func() {
		historyDateFlag = "today"
		historyGroupedFlag = false
	})
}

func TestShowHistory_Today(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setHistoryFlags(t, "today", false)

	seedClosedEntry(t, d, "writing", time.Now().Add(-time.Hour), 25*time.Minute, entry.MoodFocus)

	showHistory()

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	output := stdout.String()
	for _, want := range []string{"writing", "25m 0s", "focus", "Total:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q\nGot: %s", want, output)
		}
	}
}

func TestShowHistory_Yesterday(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setHistoryFlags(t, "yesterday", false)

	seedClosedEntry(t, d, "reading", time.Now().AddDate(0, 0, -1).Add(-time.Hour), 40*time.Minute, entry.MoodNeutral)
	seedClosedEntry(t, d, "todays work", time.Now().Add(-time.Hour), 10*time.Minute, entry.MoodFocus)

	showHistory()

	output := stdout.String()
	if !strings.Contains(output, "reading") {
		t.Errorf("Expected yesterday's entry, got: %s", output)
	}
	if strings.Contains(output, "todays work") {
		t.Errorf("Today's entry should not appear for yesterday: %s", output)
	}
}

func TestShowHistory_SpecificDate(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	day := time.Date(2026, time.August, 12, 9, 0, 0, 0, time.Local)
	seedClosedEntry(t, d, "planning", day, 30*time.Minute, entry.MoodNeutral)
	setHistoryFlags(t, "2026-08-12", false)

	showHistory()

	if !strings.Contains(stdout.String(), "planning") {
		t.Errorf("Expected entry for named date, got: %s", stdout.String())
	}
}

func TestShowHistory_Grouped(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setHistoryFlags(t, "today", true)

	base := time.Now().Add(-3 * time.Hour)
	seedClosedEntry(t, d, "writing", base, 30*time.Minute, entry.MoodFocus)
	seedClosedEntry(t, d, "writing", base.Add(time.Hour), 20*time.Minute, entry.MoodNeutral)

	showHistory()

	output := stdout.String()
	for _, want := range []string{"×2", "50m 0s", "2 entries"} {
		if !strings.Contains(output, want) {
			t.Errorf("Grouped output missing %q\nGot: %s", want, output)
		}
	}
}

func TestShowHistory_EmptyDay(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()
	setHistoryFlags(t, "2026-01-01", false)

	showHistory()

	if !strings.Contains(stdout.String(), "No entries") {
		t.Errorf("Expected empty-day message, got: %s", stdout.String())
	}
}

func TestShowHistory_InvalidDate(t *testing.T) {
	d, _, stderr := testDeps(t)
	exitCode := -1
	d.Exit = func(code int) { exitCode = code }
	SetDeps(d)
	defer ResetDeps()
	setHistoryFlags(t, "not-a-date", false)

	showHistory()

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if stderr.Len() == 0 {
		t.Error("Expected an error message for an invalid date")
	}
}
