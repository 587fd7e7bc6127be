// Package history persists completed simulation runs, newest first.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cognito-terminal/internal/interfaces"
	"cognito-terminal/internal/logger"
	"cognito-terminal/internal/types"
)

// ErrCorrupt marks a history file that exists but cannot be decoded.
var ErrCorrupt = errors.New("history file is corrupt")

// FileStore keeps the history as one indented JSON array on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ interfaces.HistoryStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Append prepends entry to the stored list.
func (s *FileStore) Append(ctx context.Context, entry types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		logger.Warn(ctx, "Overwriting corrupt history file", "path", s.path, "error", err.Error())
	} else if err != nil {
		return err
	}
	entries = append([]types.HistoryEntry{entry}, entries...)
	return s.write(entries)
}

// LoadAll returns all entries. A missing or corrupt file reads as empty.
func (s *FileStore) LoadAll(ctx context.Context) ([]types.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		logger.Warn(ctx, "Ignoring corrupt history file", "path", s.path, "error", err.Error())
		return []types.HistoryEntry{}, nil
	}
	return entries, err
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear history: %w", err)
	}
	logger.Info(ctx, "History cleared", "path", s.path)
	return nil
}

func (s *FileStore) read() ([]types.HistoryEntry, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []types.HistoryEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return []types.HistoryEntry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	return entries, nil
}

// write replaces the file atomically.
func (s *FileStore) write(entries []types.HistoryEntry) error {
	b, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
