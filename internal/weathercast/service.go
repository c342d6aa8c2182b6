package weathercast

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/weathercast/weathercast-service/internal/cache"
	"github.com/weathercast/weathercast-service/internal/cities"
	"github.com/weathercast/weathercast-service/internal/config"
	"github.com/weathercast/weathercast-service/internal/gateway"
	"github.com/weathercast/weathercast-service/internal/observability"
	"github.com/weathercast/weathercast-service/internal/prefs"
	"github.com/weathercast/weathercast-service/internal/storage"
	t "github.com/weathercast/weathercast-service/internal/types"
	"github.com/weathercast/weathercast-service/internal/weather"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// hourlyWindow bounds the hourly view to roughly 24h at 3h resolution.
const hourlyWindow = 8

// FetchIntent identifies a fetch by city name or coordinate pair.
type FetchIntent struct {
	City string
	Lat  *float64
	Lon  *float64
}

// FetchResult is the consolidated weather view returned to callers.
// Temperatures are canonical celsius; display conversion happens at the edge.
type FetchResult struct {
	Current   t.CurrentConditions `json:"current"`
	Daily     []t.ForecastDay     `json:"daily"`
	Hourly    []t.HourlyForecast  `json:"hourly"`
	Alerts    []t.WeatherAlert    `json:"alerts"`
	FromCache bool                `json:"fromCache"`
	CachedAt  *t.Timestamp        `json:"cachedAt,omitempty"`
}

type ServiceOption func(*Service)

func GatewayOption(gw *gateway.Client) ServiceOption {
	return func(s *Service) {
		s.gw = gw
	}
}

func CacheOption(store cache.Store) ServiceOption {
	return func(s *Service) {
		s.cache = store
	}
}

func KVOption(kv storage.KV) ServiceOption {
	return func(s *Service) {
		s.kv = kv
	}
}

func MetricsOption(m *observability.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

func ClockOption(clock clockwork.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

func LoggerOption(logger *zap.SugaredLogger) ServiceOption {
	return func(s *Service) {
		s.Logger = logger
	}
}

// Service orchestrates the fetch fan-out, normalization, caching and fallback.
type Service struct {
	gw      *gateway.Client
	cache   cache.Store
	kv      storage.KV
	prefs   *prefs.Store
	cities  *cities.Store
	metrics *observability.Metrics
	clock   clockwork.Clock
	timeout time.Duration
	addr    string

	// generation distinguishes the most recent fetch from superseded ones so
	// a slow stale response cannot clobber newer state.
	generation atomic.Uint64
	mu         sync.RWMutex
	latest     *FetchResult

	Logger *zap.SugaredLogger
}

func New(cfg *config.Config, opts ...ServiceOption) *Service {
	s := &Service{
		timeout: cfg.FetchTimeout,
		addr:    cfg.HTTPAddr,
		clock:   clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.Logger == nil {
		baseLogger, _ := zap.NewProduction()
		s.Logger = baseLogger.Sugar()
	}

	if s.gw == nil {
		s.gw = gateway.New(
			gateway.BaseUrlOption(cfg.GatewayBaseUrl),
			gateway.AuthTokenOption(cfg.GatewayAuthToken),
			gateway.RateLimitOption(cfg.GatewayRateRPS, cfg.GatewayBurst),
		)
	}

	if s.cache == nil || s.kv == nil {
		if cfg.DisableRedis {
			if s.cache == nil {
				s.cache = cache.NewMemoryStore(cache.MemoryClockOption(s.clock))
			}
			if s.kv == nil {
				s.kv = storage.NewMemoryKV()
			}
		} else {
			rc := redis.NewClient(&redis.Options{
				Addr: cfg.RedisAddr,
			})
			if s.cache == nil {
				s.cache = cache.NewRedisStore(rc, cache.ClockOption(s.clock))
			}
			if s.kv == nil {
				s.kv = storage.NewRedisKV(rc)
			}
		}
	}

	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}

	s.prefs = prefs.New(s.kv)
	s.cities = cities.New(s.kv)

	return s
}

// Fetch resolves a fetch intent into a consolidated weather result or a
// classified error. The three upstream requests run in parallel and the
// operation joins on all of them; an alerts failure alone is absorbed.
func (s *Service) Fetch(ctx context.Context, intent FetchIntent) (*FetchResult, error) {
	gen := s.generation.Add(1)

	key, gwReq, err := resolveIntent(intent)
	if err != nil {
		s.metrics.Fetches.WithLabelValues("error").Inc()
		s.metrics.FetchErrors.WithLabelValues(string(t.CodeInvalidInput)).Inc()
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Opportunistic read, held for fallback only.
	cached, found := s.cache.Get(ctx, key)
	if found {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	var (
		cur *gateway.CurrentPayload
		fc  *gateway.ForecastPayload
		oc  *gateway.OneCallPayload
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.callUpstream(gateway.TypeCurrent, func() error {
			var err error
			cur, err = s.gw.Current(ctx, gwReq)
			return err
		})
	})
	g.Go(func() error {
		return s.callUpstream(gateway.TypeForecast, func() error {
			var err error
			fc, err = s.gw.Forecast(ctx, gwReq)
			return err
		})
	})
	g.Go(func() error {
		err := s.callUpstream(gateway.TypeOneCall, func() error {
			var err error
			oc, err = s.gw.OneCall(ctx, gwReq)
			return err
		})
		if err != nil {
			// Alerts are best-effort and never block the primary result.
			s.Logger.Warnw("alerts unavailable, continuing without",
				"key", key, "error", err.Error())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		var werr *t.WeatherError
		if !errors.As(err, &werr) {
			werr = t.NewError(t.CodeUnknown, true, "%s", err.Error())
		}
		s.metrics.FetchErrors.WithLabelValues(string(werr.Code)).Inc()

		// Cache fallback is gated on connectivity failures only; a stale
		// snapshot must never mask a not-found or credential failure.
		if werr.Code == t.CodeNetworkError && found {
			s.metrics.Fetches.WithLabelValues("cached").Inc()
			s.metrics.CacheFallbacks.Inc()
			s.Logger.Infow("serving cached snapshot after connectivity failure",
				"key", key, "cachedAt", cached.CachedAt.Time)
			res := resultFromSnapshot(cached)
			s.apply(gen, res)
			return res, nil
		}

		s.metrics.Fetches.WithLabelValues("error").Inc()
		return nil, werr
	}

	res := &FetchResult{
		Current: weather.CurrentFromPayload(cur),
		Daily:   weather.DailyFromSamples(fc.Forecast.List),
		Hourly:  weather.HourlyFromSamples(fc.Forecast.List, hourlyWindow),
		Alerts:  weather.AlertsFromPayload(oc),
	}

	snapshot := &t.CachedSnapshot{
		Current: res.Current,
		Daily:   res.Daily,
		Hourly:  res.Hourly,
		Alerts:  res.Alerts,
	}
	if err := s.cache.Put(ctx, key, snapshot); err != nil {
		// Caching is fire-and-forget; a failed write never reaches the caller.
		s.Logger.Warnw("snapshot cache write failed",
			"key", key, "error", err.Error())
	}

	if city := strings.TrimSpace(intent.City); city != "" {
		if err := s.prefs.SetLastCity(ctx, city); err != nil {
			s.Logger.Warnw("failed to persist last searched city",
				"city", city, "error", err.Error())
		}
	}

	s.metrics.Fetches.WithLabelValues("ok").Inc()
	s.apply(gen, res)
	return res, nil
}

// Latest returns the most recent non-superseded fetch result.
func (s *Service) Latest() (*FetchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// apply replaces the latest view unless the fetch has been superseded by a
// newer generation, in which case the result is discarded.
func (s *Service) apply(gen uint64, res *FetchResult) bool {
	if s.generation.Load() != gen {
		return false
	}
	s.mu.Lock()
	s.latest = res
	s.mu.Unlock()
	return true
}

func (s *Service) callUpstream(kind string, call func() error) error {
	timer := prometheus.NewTimer(s.metrics.UpstreamDuration.WithLabelValues(kind))
	err := call()
	timer.ObserveDuration()

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.UpstreamRequests.WithLabelValues(kind, outcome).Inc()
	return err
}

func resolveIntent(intent FetchIntent) (string, gateway.Request, error) {
	if intent.Lat != nil && intent.Lon != nil {
		return cache.CoordKey(*intent.Lat, *intent.Lon),
			gateway.Request{Lat: intent.Lat, Lon: intent.Lon}, nil
	}
	city := strings.TrimSpace(intent.City)
	if city == "" {
		return "", gateway.Request{}, t.NewError(t.CodeInvalidInput, false, "city name or coordinates are required")
	}
	return cache.Key(city), gateway.Request{City: city}, nil
}

func resultFromSnapshot(snapshot *t.CachedSnapshot) *FetchResult {
	cachedAt := snapshot.CachedAt
	return &FetchResult{
		Current:   snapshot.Current,
		Daily:     snapshot.Daily,
		Hourly:    snapshot.Hourly,
		Alerts:    snapshot.Alerts,
		FromCache: true,
		CachedAt:  &cachedAt,
	}
}
