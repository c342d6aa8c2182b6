package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonboulle/clockwork"
	t "github.com/weathercast/weathercast-service/internal/types"
)

// MemoryStore is a concurrency-safe in-memory Store for tests and redis-less
// deployments. Entries hold serialized snapshots so reads never alias writes.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	clock clockwork.Clock
}

type MemoryStoreOption func(*MemoryStore)

func MemoryClockOption(clock clockwork.Clock) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		data:  make(map[string][]byte),
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (*t.CachedSnapshot, bool) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	var snapshot t.CachedSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

func (s *MemoryStore) Put(_ context.Context, key string, snapshot *t.CachedSnapshot) error {
	stamped := *snapshot
	stamped.CachedAt = t.TS(s.clock.Now().UTC())
	raw, err := json.Marshal(stamped)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IsFresh(snapshot *t.CachedSnapshot) bool {
	return isFresh(s.clock, snapshot)
}

// Corrupt injects an undecodable entry. Test helper.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	s.data[key] = []byte("{not json")
	s.mu.Unlock()
}
