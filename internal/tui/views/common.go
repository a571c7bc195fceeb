package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/timeutil"
	"github.com/solvik/daybook/internal/tui/ui"
)

// formatClockTime renders a wall-clock time in the configured format.
func formatClockTime(t time.Time, timeFormat string) string {
	if timeFormat == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width      int    // Available width for rendering
	Cursor     int    // Currently selected entry index (-1 for none)
	TimeFormat string // "24h" or "12h"
}

// RenderEntryList renders a day's entries with aligned columns. Open
// entries show "ongoing" in place of a duration.
func RenderEntryList(entries []entry.TimeEntry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	type row struct {
		span     string
		title    string
		duration string
		mood     string
		open     bool
	}

	maxSpanWidth := 0
	maxTitleWidth := 0
	rows := make([]row, len(entries))

	for i, e := range entries {
		span := formatClockTime(e.StartTime, opts.TimeFormat)
		if e.EndTime != nil {
			span += "–" + formatClockTime(*e.EndTime, opts.TimeFormat)
		}
		if len(span) > maxSpanWidth {
			maxSpanWidth = len(span)
		}

		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		if len(title) > maxTitleWidth {
			maxTitleWidth = len(title)
		}

		duration := "ongoing"
		if e.EndTime != nil {
			duration = timeutil.FormatDuration(e.Duration())
		}

		rows[i] = row{
			span:     span,
			title:    title,
			duration: duration,
			mood:     moodLabel(e.Mood),
			open:     e.Open(),
		}
	}

	// Cap the title column so duration and mood stay on screen.
	maxAllowedTitleWidth := opts.Width - maxSpanWidth - 25
	if maxAllowedTitleWidth < 20 {
		maxAllowedTitleWidth = 20
	}
	if maxTitleWidth > maxAllowedTitleWidth {
		maxTitleWidth = maxAllowedTitleWidth
	}

	var b strings.Builder
	for i, r := range rows {
		style := styles.EntryNormal
		if i == opts.Cursor {
			style = styles.EntrySelected
		}

		title := r.title
		if len(title) > maxTitleWidth {
			title = title[:maxTitleWidth-1] + "…"
		}

		span := styles.EntryTime.Render(fmt.Sprintf("%-*s", maxSpanWidth, r.span))
		titleCol := styles.EntryTitle.Render(fmt.Sprintf("%-*s", maxTitleWidth, title))
		var durationCol string
		if r.open {
			durationCol = styles.TimerRunning.Render(r.duration)
		} else {
			durationCol = styles.EntryDuration.Render(r.duration)
		}

		line := fmt.Sprintf("%s %s %s", span, titleCol, durationCol)
		if r.mood != "" {
			line += " " + styles.EntryMood.Render(r.mood)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// moodLabel renders a mood for display, empty for unset.
func moodLabel(m entry.Mood) string {
	switch m {
	case entry.MoodFocus:
		return "● focus"
	case entry.MoodNeutral:
		return "◐ neutral"
	case entry.MoodTired:
		return "○ tired"
	}
	return ""
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
