package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/storage"
	"github.com/solvik/daybook/internal/timeutil"
)

// EntryService provides operations for browsing and editing entries
type EntryService struct {
	store *storage.Store
}

// NewEntryService creates a new EntryService
func NewEntryService(store *storage.Store) *EntryService {
	return &EntryService{store: store}
}

// Day returns the entries that started on the given day, newest first,
// together with per-title aggregates.
func (s *EntryService) Day(date time.Time) DayResult {
	result := DayResult{Date: date}

	for _, e := range s.store.List() {
		if timeutil.SameDay(e.StartTime, date) {
			result.Entries = append(result.Entries, e)
		}
	}

	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].StartTime.After(result.Entries[j].StartTime)
	})

	groups := make(map[string]*TitleGroup)
	order := []string{}
	for _, e := range result.Entries {
		result.Total += e.Duration()

		g, ok := groups[e.Title]
		if !ok {
			g = &TitleGroup{Title: e.Title}
			groups[e.Title] = g
			order = append(order, e.Title)
		}
		g.Count++
		g.Total += e.Duration()
		// Entries are newest first, so the first mood seen wins.
		if g.LatestMood == "" && e.Mood != "" {
			g.LatestMood = e.Mood
		}
	}

	for _, title := range order {
		result.Groups = append(result.Groups, *groups[title])
	}
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].Total > result.Groups[j].Total
	})

	return result
}

// Suggestions returns the distinct non-empty titles across all entries,
// sorted alphabetically. Used for title autocompletion.
func (s *EntryService) Suggestions() []string {
	seen := make(map[string]bool)
	titles := []string{}

	for _, e := range s.store.List() {
		title := strings.TrimSpace(e.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}

	sort.Strings(titles)
	return titles
}

// EntryEdit describes a partial update to an entry. Nil fields are left
// unchanged. ClearEnd reopens the entry, which fails if another entry
// is already running.
type EntryEdit struct {
	Title    *string
	Start    *time.Time
	End      *time.Time
	ClearEnd bool
	Mood     *entry.Mood
}

// Edit applies an edit to the entry with the given id and persists it.
// The stored invariants still hold afterwards: the end time may not
// precede the start time, and at most one entry may be open.
func (s *EntryService) Edit(id string, edit EntryEdit) (*entry.TimeEntry, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}

	if edit.Title != nil {
		e.Title = strings.TrimSpace(*edit.Title)
	}
	if edit.Start != nil {
		e.StartTime = *edit.Start
	}
	if edit.ClearEnd {
		e.EndTime = nil
		e.Mood = ""
	} else if edit.End != nil {
		end := *edit.End
		e.EndTime = &end
	}
	if edit.Mood != nil {
		if _, err := entry.ParseMood(string(*edit.Mood)); err != nil {
			return nil, err
		}
		e.Mood = *edit.Mood
	}

	if err := s.store.Update(e); err != nil {
		return nil, err
	}

	return &e, nil
}

// Delete removes the entry with the given id. Deleting an id that does
// not exist is not an error.
func (s *EntryService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Get returns the entry with the given id.
func (s *EntryService) Get(id string) (entry.TimeEntry, bool) {
	return s.store.Get(id)
}
