package repository

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

var _ domain.StateStore = (*RedisStateStore)(nil)

// RedisStateStore maps the slot onto a single string key with no expiry.
type RedisStateStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStateStore(rdb *redis.Client, key string) *RedisStateStore {
	return &RedisStateStore{rdb: rdb, key: key}
}

func (s *RedisStateStore) Load(ctx context.Context) (*domain.StoredData, error) {
	val, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stored := domain.DecodeStoredData(val)
	if stored == nil {
		log.Printf("[STORE] Discarding unreadable state at key %s", s.key)
	}
	return stored, nil
}

func (s *RedisStateStore) Save(ctx context.Context, data *domain.AppData) error {
	raw, err := domain.EncodeAppData(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, raw, 0).Err()
}

func (s *RedisStateStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

func (s *RedisStateStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
