package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// FileStore keeps processed identifiers in a JSON file, one entry per id.
// The on-disk shape matches the original history file, so an existing
// history_pdfs.json keeps working. Every mark rewrites the file so a crash
// mid-run never causes already-processed documents to be re-downloaded.
type FileStore struct {
	path    string
	entries map[string]domain.HistoryEntry
}

var _ ports.HistoryStore = (*FileStore)(nil)

// NewFileStore points the store at its JSON file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, entries: map[string]domain.HistoryEntry{}}
}

// Load reads the history file; a missing file is an empty history.
func (s *FileStore) Load(ctx context.Context) error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read history %s: %w", s.path, err)
	}

	entries := map[string]domain.HistoryEntry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse history %s: %w", s.path, err)
	}

	s.entries = entries
	return nil
}

// Has reports whether the identifier was processed in any prior run.
func (s *FileStore) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// MarkProcessed records the entry and persists immediately. Marking an
// already-known id is a no-op.
func (s *FileStore) MarkProcessed(ctx context.Context, id string, entry domain.HistoryEntry) error {
	if _, ok := s.entries[id]; ok {
		return nil
	}

	s.entries[id] = entry
	if err := s.persist(); err != nil {
		delete(s.entries, id)
		return err
	}
	return nil
}

// Len returns the number of persisted entries.
func (s *FileStore) Len() int {
	return len(s.entries)
}

// persist writes the full map atomically via a temp file and rename.
func (s *FileStore) persist() error {
	raw, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp history: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace history %s: %w", s.path, err)
	}

	return nil
}
