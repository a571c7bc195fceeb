// Package service provides the business logic layer for the daybook
// application. It wraps the underlying storage, config, and ai packages,
// providing a clean API for both CLI and TUI frontends.
package service

import (
	"time"

	"github.com/solvik/daybook/internal/entry"
)

// TimerStatus represents the current state of the timer
type TimerStatus struct {
	Running     bool
	Entry       *entry.TimeEntry
	ElapsedTime time.Duration
}

// TitleGroup aggregates the entries of one day that share a title
type TitleGroup struct {
	Title      string
	Count      int
	Total      time.Duration
	LatestMood entry.Mood
}

// DayResult contains one day's entries and their aggregates
type DayResult struct {
	Date    time.Time
	Entries []entry.TimeEntry // most recent start first
	Groups  []TitleGroup      // largest total first
	Total   time.Duration     // completed entries only
}
