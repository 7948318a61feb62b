package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

var _ domain.StateStore = (*FileStateStore)(nil)

// FileStateStore keeps the slot in a single JSON file. Saves go through a
// temp file and a rename so readers never see a partial document.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Path() string {
	return s.path
}

func (s *FileStateStore) Load(ctx context.Context) (*domain.StoredData, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	stored := domain.DecodeStoredData(raw)
	if stored == nil && len(raw) > 0 {
		log.Printf("[STORE] Discarding unreadable state in %s", s.path)
	}
	return stored, nil
}

func (s *FileStateStore) Save(ctx context.Context, data *domain.AppData) error {
	raw, err := domain.EncodeAppData(data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStateStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStateStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
