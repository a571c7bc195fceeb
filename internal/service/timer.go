package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/storage"
)

// Timer-specific errors
var (
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
	ErrNoTimerRunning      = errors.New("no timer is running")
	ErrEmptyTitle          = errors.New("a title is required to stop the timer")
)

// TimerService provides operations for starting and stopping timed entries
type TimerService struct {
	store *storage.Store
}

// NewTimerService creates a new TimerService
func NewTimerService(store *storage.Store) *TimerService {
	return &TimerService{store: store}
}

// Start begins timing a new entry. The title may be empty; it can be
// filled in later via Stop's override or an edit. At most one entry may
// be running, so starting while another is open fails.
func (s *TimerService) Start(title string) (*entry.TimeEntry, error) {
	e := entry.New(strings.TrimSpace(title))

	if err := s.store.Add(e); err != nil {
		if errors.Is(err, storage.ErrOpenEntryExists) {
			return nil, ErrTimerAlreadyRunning
		}
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &e, nil
}

// Stop closes the running entry, stamping its end time and mood. The
// entry keeps its own title when it has one; overrideTitle only
// backfills an entry that was started without a title, and an untitled
// entry must be given one here. The mood must be one of the known
// moods.
func (s *TimerService) Stop(mood entry.Mood, overrideTitle string) (*entry.TimeEntry, error) {
	active := s.store.ActiveEntry()
	if active == nil {
		return nil, ErrNoTimerRunning
	}

	title := strings.TrimSpace(active.Title)
	if title == "" {
		title = strings.TrimSpace(overrideTitle)
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if _, err := entry.ParseMood(string(mood)); err != nil {
		return nil, err
	}

	now := time.Now()
	active.Title = title
	active.EndTime = &now
	active.Mood = mood

	if err := s.store.Update(*active); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return active, nil
}

// Active returns the currently running entry, or nil.
func (s *TimerService) Active() *entry.TimeEntry {
	return s.store.ActiveEntry()
}

// Status returns the current timer status
func (s *TimerService) Status() TimerStatus {
	active := s.store.ActiveEntry()

	status := TimerStatus{
		Running: active != nil,
		Entry:   active,
	}

	if active != nil {
		status.ElapsedTime = time.Since(active.StartTime)
	}

	return status
}
