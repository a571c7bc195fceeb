package entry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mood classifies how a completed session felt.
type Mood string

const (
	MoodFocus   Mood = "focus"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
)

// Valid reports whether m is one of the three known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodFocus, MoodNeutral, MoodTired:
		return true
	}
	return false
}

// ParseMood converts a user-supplied string into a Mood.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q (valid: focus, neutral, tired)", s)
	}
	return m, nil
}

// TimeEntry represents a single tracked session.
// EndTime is nil while the session is in progress; Mood is set only
// when the session is closed. Title may be empty for sessions started
// through the quick-start flow and must be filled in before closing.
type TimeEntry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Mood        Mood       `json:"mood,omitempty"`
	Description string     `json:"description,omitempty"`
}

// New creates an open entry starting now with a fresh id.
func New(title string) TimeEntry {
	return TimeEntry{
		ID:        uuid.NewString(),
		Title:     title,
		StartTime: time.Now(),
	}
}

// Open reports whether the entry is still running (no end time yet).
func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}

// Duration returns the closed entry's length, or zero while open.
func (e TimeEntry) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// AIConfig is the singleton configuration for the diary endpoint.
// An empty APIKey is legal and simply disables diary generation.
type AIConfig struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseURL"`
	Model   string `json:"model"`
}

// DefaultAIConfig returns the configuration used before the user has
// saved anything.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		APIKey:  "",
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-3.5-turbo",
	}
}
