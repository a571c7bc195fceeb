// Package timeutil provides day-oriented time helpers shared by the
// history, diary, and presentation layers.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsToday reports whether t falls on the current day.
func IsToday(t time.Time) bool {
	return SameDay(t, time.Now())
}

// Today returns midnight of the current day in local time
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Yesterday returns midnight of the previous day in local time
func Yesterday() time.Time {
	return StartOfDay(time.Now().AddDate(0, 0, -1))
}

// IsInRange reports whether t lies within [start, end] inclusive.
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ParseDay parses a user-supplied day reference. Accepted forms:
// "today", "yesterday", "y", or an ISO date like "2026-03-14".
// Returns midnight of the referenced day in local time.
func ParseDay(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return StartOfDay(time.Now()), nil
	case "y", "yesterday":
		return StartOfDay(time.Now().AddDate(0, 0, -1)), nil
	}

	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, 'today', or 'yesterday')", s)
	}
	return t, nil
}

// FormatDay renders a day heading like "Monday, March 16" with the
// year appended when it differs from the current year.
func FormatDay(t time.Time) string {
	if t.Year() == time.Now().Year() {
		return t.Format("Monday, January 2")
	}
	return t.Format("Monday, January 2, 2006")
}

// FormatClock renders a duration as a zero-padded HH:MM:SS clock,
// wrapping at 24 hours the way a wall-clock display does.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", (secs/3600)%24, (secs/60)%60, secs%60)
}

// FormatDuration renders a duration in compact human form:
// "42s", "5m 2s", or "1h 3m 4s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	hours := secs / 3600
	mins := (secs / 60) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs%60)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}
