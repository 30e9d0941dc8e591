// Package history persists generated poems as a JSON file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry is one generated poem together with the impression that prompted it.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Poem      string    `json:"tsukiuta"`
	Source    string    `json:"source,omitempty"`
}

// NewEntry stamps a fresh entry with an id and the current time.
func NewEntry(input, poem, source string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Input:     input,
		Poem:      poem,
		Source:    source,
	}
}

// Store reads and writes one history file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved entries. A missing file is an empty history.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", s.path, err)
	}
	return entries, nil
}

// Save writes entries, creating the parent directory when needed.
func (s *Store) Save(entries []Entry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Append loads, appends and saves in one step.
func (s *Store) Append(e Entry) error {
	entries, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(entries, e))
}
