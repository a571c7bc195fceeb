// Package storage owns the durable JSON document holding the entry
// collection and the AI configuration singleton. All other components
// read and write through the Store; nobody keeps a private copy of the
// collection across mutations.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "daybook"
	// StoreFile is the name of the JSON document file
	StoreFile = "store.json"
)

// Store-level errors.
var (
	// ErrNotFound is returned by Update when no entry has the given id.
	ErrNotFound = errors.New("entry not found")
	// ErrOpenEntryExists is returned when a mutation would leave more
	// than one entry without an end time.
	ErrOpenEntryExists = errors.New("an open entry already exists")
	// ErrInvalidRange is returned when a mutation would set an end time
	// earlier than the entry's start time.
	ErrInvalidRange = errors.New("end time is before start time")
)

// document is the persisted shape: two named records in one JSON file.
type document struct {
	Entries  []entry.TimeEntry `json:"entries"`
	AIConfig entry.AIConfig    `json:"aiConfig"`
}

// Store is the single owner of the durable document. Mutations are
// serialized by an internal mutex and persisted synchronously (atomic
// temp-file write then rename) before the in-memory state is updated,
// so a failed write never loses previously saved data.
type Store struct {
	path string

	mu  sync.Mutex
	doc document

	notifier Notifier
}

// GetStorePath returns the path to the JSON document file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetStorePath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, StoreFile), nil
}

// Open loads the document at path, or starts from defaults when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		doc: document{
			Entries:  []entry.TimeEntry{},
			AIConfig: entry.DefaultAIConfig(),
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Entries == nil {
		doc.Entries = []entry.TimeEntry{}
	}
	if doc.AIConfig == (entry.AIConfig{}) {
		doc.AIConfig = entry.DefaultAIConfig()
	}

	s.doc = doc
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// List returns a copy of the full collection in stored order.
// Callers sort as needed.
func (s *Store) List() []entry.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entry.TimeEntry, len(s.doc.Entries))
	copy(out, s.doc.Entries)
	return out
}

// Get returns the entry with the given id, if present.
func (s *Store) Get(id string) (entry.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.doc.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return entry.TimeEntry{}, false
}

// Add appends a new entry, persists, and notifies observers.
// Adding a second open entry while one exists is refused, which keeps
// the at-most-one-active invariant an atomic check-and-create.
func (s *Store) Add(e entry.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateLocked(e, ""); err != nil {
		return err
	}

	next := s.doc
	next.Entries = append(append([]entry.TimeEntry{}, s.doc.Entries...), e)
	if err := s.persistLocked(next); err != nil {
		return err
	}

	s.notifier.Broadcast()
	return nil
}

// Update replaces the stored entry whose id matches, persists, and
// notifies observers. Returns ErrNotFound when no entry has that id.
// Edits are re-validated against the open-entry and time-range
// invariants, so free-form editing cannot reintroduce a second open
// entry or an inverted range.
func (s *Store) Update(e entry.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, existing := range s.doc.Entries {
		if existing.ID == e.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	if err := s.validateLocked(e, e.ID); err != nil {
		return err
	}

	next := s.doc
	next.Entries = append([]entry.TimeEntry{}, s.doc.Entries...)
	next.Entries[index] = e
	if err := s.persistLocked(next); err != nil {
		return err
	}

	s.notifier.Broadcast()
	return nil
}

// Delete removes the entry with the given id if present. Deleting an
// absent id is a success (idempotent); observers are notified either
// way.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	next.Entries = make([]entry.TimeEntry, 0, len(s.doc.Entries))
	for _, e := range s.doc.Entries {
		if e.ID != id {
			next.Entries = append(next.Entries, e)
		}
	}

	if len(next.Entries) != len(s.doc.Entries) {
		if err := s.persistLocked(next); err != nil {
			return err
		}
	}

	s.notifier.Broadcast()
	return nil
}

// ActiveEntry returns the unique entry without an end time, or nil
// when everything is closed. Recomputed from the collection on every
// call, never cached.
func (s *Store) ActiveEntry() *entry.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.doc.Entries {
		if e.Open() {
			found := e
			return &found
		}
	}
	return nil
}

// AIConfig returns the current AI configuration.
func (s *Store) AIConfig() entry.AIConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.AIConfig
}

// SaveAIConfig replaces the AI configuration. Field contents are not
// validated; an empty api key is legal and disables diary generation.
func (s *Store) SaveAIConfig(cfg entry.AIConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	next.AIConfig = cfg
	return s.persistLocked(next)
}

// Subscribe registers an observer for change notifications. The
// returned function unsubscribes; call it when the surface goes away.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}

// validateLocked checks the collection invariants for a to-be-stored
// entry. skipID names the entry being replaced (empty for adds).
func (s *Store) validateLocked(e entry.TimeEntry, skipID string) error {
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return ErrInvalidRange
	}
	if e.Open() {
		for _, existing := range s.doc.Entries {
			if existing.ID != skipID && existing.Open() {
				return ErrOpenEntryExists
			}
		}
	}
	return nil
}

// persistLocked writes the candidate document to disk and commits it
// to memory only on success. Uses atomic write pattern (write to temp
// file, then rename) for safety.
func (s *Store) persistLocked(next document) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	s.doc = next
	return nil
}
