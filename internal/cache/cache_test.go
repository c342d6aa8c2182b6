package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weathercast/weathercast-service/internal/types"
)

func TestKey_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, Key("London"), Key("london"))
	assert.Equal(t, Key("  London  "), Key("london"))
	assert.Equal(t, "new york", Key("New York"))
}

func TestCoordKey_PrecisionInsensitive(t *testing.T) {
	assert.Equal(t, CoordKey(51.505, -0.091), CoordKey(51.5051, -0.0909))
	assert.Equal(t, "51.51,-0.09", CoordKey(51.505, -0.091))
	assert.NotEqual(t, CoordKey(51.50, -0.09), CoordKey(51.51, -0.09))
}

func snapshot() *types.CachedSnapshot {
	return &types.CachedSnapshot{
		Current: types.CurrentConditions{
			Location:    types.Location{Lat: 51.51, Lon: -0.13, Name: "London", Country: "GB"},
			Temperature: 12,
			Condition:   types.ConditionClouds,
			Timestamp:   types.TS(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		},
		Daily:  []types.ForecastDay{{TempMin: 4, TempMax: 11}},
		Hourly: []types.HourlyForecast{{Temperature: 10}},
		Alerts: []types.WeatherAlert{},
	}
}

func TestMemoryStore_PutStampsAndGetRoundTrips(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStore(MemoryClockOption(clock))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "london", snapshot()))

	got, ok := store.Get(ctx, "london")
	require.True(t, ok)
	assert.Equal(t, clock.Now().UTC(), got.CachedAt.Time)
	assert.Equal(t, "London", got.Current.Location.Name)
	assert.Equal(t, 12.0, got.Current.Temperature)
	assert.Len(t, got.Daily, 1)
}

func TestMemoryStore_MissWhenNeverWritten(t *testing.T) {
	store := NewMemoryStore()
	_, ok := store.Get(context.Background(), "nowhere")
	assert.False(t, ok)
}

func TestMemoryStore_CorruptEntryReadsAsMiss(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "london", snapshot()))

	store.Corrupt("london")

	_, ok := store.Get(ctx, "london")
	assert.False(t, ok, "undecodable entry is a miss, never an error")
}

func TestIsFresh_FlipsAtTTL(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStore(MemoryClockOption(clock))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "london", snapshot()))
	got, ok := store.Get(ctx, "london")
	require.True(t, ok)

	assert.True(t, store.IsFresh(got))

	clock.Advance(TTL - time.Second)
	assert.True(t, store.IsFresh(got))

	clock.Advance(2 * time.Second)
	assert.False(t, store.IsFresh(got), "entry is stale once the TTL window passes")
}

func TestIsFresh_NilSnapshot(t *testing.T) {
	store := NewMemoryStore()
	assert.False(t, store.IsFresh(nil))
}

func TestSnapshot_TimesSerializeAsEpochMillis(t *testing.T) {
	s := snapshot()
	raw, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timestamp":1772366400000`)

	var back types.CachedSnapshot
	require.NoError(t, back.UnmarshalBinary(raw))
	assert.Equal(t, s.Current.Timestamp.Time, back.Current.Timestamp.Time)
}
