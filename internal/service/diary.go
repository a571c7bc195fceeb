package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/solvik/daybook/internal/ai"
	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/storage"
	"github.com/solvik/daybook/internal/timeutil"
)

// ErrNoEntries is returned when a diary is requested for a day with no
// recorded entries.
var ErrNoEntries = errors.New("no entries recorded for that day")

// diarySystemPrompt frames the model as a diary writer for every request.
const diarySystemPrompt = "You are a helpful assistant that summarizes daily activities into a reflective diary."

// DiaryService turns one day's entries into a generated diary text
type DiaryService struct {
	store  *storage.Store
	client *ai.Client
}

// NewDiaryService creates a new DiaryService
func NewDiaryService(store *storage.Store, client *ai.Client) *DiaryService {
	return &DiaryService{store: store, client: client}
}

// Generate asks the configured AI endpoint for a diary entry covering
// the given day. It fails with ErrNoEntries when the day is empty and
// with ai.ErrMissingAPIKey when no API key is configured.
func (s *DiaryService) Generate(ctx context.Context, date time.Time) (string, error) {
	var entries []entry.TimeEntry
	for _, e := range s.store.List() {
		if timeutil.SameDay(e.StartTime, date) {
			entries = append(entries, e)
		}
	}

	if len(entries) == 0 {
		return "", ErrNoEntries
	}

	prompt := buildDiaryPrompt(date, entries)

	text, err := s.client.Complete(ctx, s.store.AIConfig(), diarySystemPrompt, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// buildDiaryPrompt renders the day's activity log as the user message.
func buildDiaryPrompt(date time.Time, entries []entry.TimeEntry) string {
	var logs []string
	for _, e := range entries {
		if e.Open() {
			logs = append(logs, fmt.Sprintf("- %s: ongoing", e.Title))
			continue
		}
		minutes := int(math.Round(e.Duration().Minutes()))
		line := fmt.Sprintf("- %s: %d mins", e.Title, minutes)
		if e.Mood != "" {
			line += fmt.Sprintf(" (Mood: %s)", e.Mood)
		}
		logs = append(logs, line)
	}

	return fmt.Sprintf(
		"Here are my activities for %s:\n%s\n\nPlease write a short, reflective diary entry about my day based on these logs. Highlight my productivity and energy levels. Keep it encouraging but realistic.",
		date.Format("2006-01-02"),
		strings.Join(logs, "\n"),
	)
}
