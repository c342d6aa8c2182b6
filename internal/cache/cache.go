package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	t "github.com/weathercast/weathercast-service/internal/types"
)

const (
	// TTL is the freshness window. Entries older than this are logically
	// stale but remain usable as an offline fallback.
	TTL = 10 * time.Minute

	// retention bounds how long redis keeps a stale entry around.
	retention = 24 * time.Hour

	keyPrefix = "weathercast:snapshot:"
)

// Key derives the cache key for a named-location request. Deterministic and
// case-insensitive so repeated lookups for the same logical city share an entry.
func Key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// CoordKey derives the cache key for a coordinate request. Rounding to two
// decimals bounds key cardinality and lets nearby requests share an entry.
func CoordKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// Store is the snapshot cache. Get treats absent or corrupt entries as a
// miss; Put is best-effort and callers never surface its failure.
type Store interface {
	Get(ctx context.Context, key string) (*t.CachedSnapshot, bool)
	Put(ctx context.Context, key string, snapshot *t.CachedSnapshot) error
	IsFresh(snapshot *t.CachedSnapshot) bool
}

type RedisStoreOption func(*RedisStore)

func ClockOption(clock clockwork.Clock) RedisStoreOption {
	return func(s *RedisStore) {
		s.clock = clock
	}
}

// RedisStore persists snapshots as JSON in redis, keyed by location.
type RedisStore struct {
	rc    *redis.Client
	clock clockwork.Clock
}

func NewRedisStore(rc *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		rc:    rc,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string) (*t.CachedSnapshot, bool) {
	raw, err := s.rc.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var snapshot t.CachedSnapshot
	if err := snapshot.UnmarshalBinary(raw); err != nil {
		// Corrupt entry reads as a miss, never a failure.
		return nil, false
	}
	return &snapshot, true
}

func (s *RedisStore) Put(ctx context.Context, key string, snapshot *t.CachedSnapshot) error {
	stamped := *snapshot
	stamped.CachedAt = t.TS(s.clock.Now().UTC())
	return s.rc.Set(ctx, keyPrefix+key, stamped, retention).Err()
}

func (s *RedisStore) IsFresh(snapshot *t.CachedSnapshot) bool {
	return isFresh(s.clock, snapshot)
}

func isFresh(clock clockwork.Clock, snapshot *t.CachedSnapshot) bool {
	if snapshot == nil {
		return false
	}
	return clock.Now().Sub(snapshot.CachedAt.Time) < TTL
}
