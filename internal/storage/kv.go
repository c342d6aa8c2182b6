package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the small keyed byte store behind preferences and saved cities.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisKV backs KV with redis.
type RedisKV struct {
	rc *redis.Client
}

func NewRedisKV(rc *redis.Client) *RedisKV {
	return &RedisKV{rc: rc}
}

func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rc.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	return raw, err
}

func (s *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return s.rc.Set(ctx, key, value, 0).Err()
}

// MemoryKV is the in-memory KV used by tests and redis-less deployments.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}
