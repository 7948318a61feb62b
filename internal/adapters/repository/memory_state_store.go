package repository

import (
	"context"
	"sync"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

var _ domain.StateStore = (*InMemoryStateStore)(nil)

// InMemoryStateStore keeps the encoded document, so loads go through the
// same decode path as the durable stores.
type InMemoryStateStore struct {
	raw []byte

	mu sync.RWMutex
}

func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{}
}

func (s *InMemoryStateStore) Load(ctx context.Context) (*domain.StoredData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.DecodeStoredData(s.raw), nil
}

func (s *InMemoryStateStore) Save(ctx context.Context, data *domain.AppData) error {
	raw, err := domain.EncodeAppData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = raw
	return nil
}

func (s *InMemoryStateStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = nil
	return nil
}

func (s *InMemoryStateStore) Ping(ctx context.Context) error {
	return nil
}
