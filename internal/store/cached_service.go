package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fetcher is the aggregation surface the cached layer wraps.
type Fetcher interface {
	GetCompleteWeatherData(ctx context.Context, lat, lon float64) (*weather.WeatherData, error)
	GetCompleteWeatherDataByCity(ctx context.Context, name string) (*weather.WeatherData, error)
}

// CachedService serves weather snapshots from the cache while fresh and
// falls through to the aggregation service otherwise. The three query kinds
// are cached separately so a refresh invalidates them as a unit, matching
// the dashboard's per-view queries.
type CachedService struct {
	fetcher Fetcher
	cache   *Cache
	logger  *slog.Logger
}

func NewCachedService(fetcher Fetcher, cache *Cache, logger *slog.Logger) *CachedService {
	return &CachedService{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

// GetByCity returns the snapshot for a city name, fetching only on a cache
// miss or after the freshness window has lapsed.
func (s *CachedService) GetByCity(ctx context.Context, name string) (*weather.WeatherData, error) {
	key := cityKey(name)
	if data, ok := s.cached(key); ok {
		return data, nil
	}

	data, err := s.fetcher.GetCompleteWeatherDataByCity(ctx, name)
	if err != nil {
		return nil, err
	}
	s.store(key, data)
	return data, nil
}

// GetByCoords is the coordinate-keyed variant of GetByCity.
func (s *CachedService) GetByCoords(ctx context.Context, lat, lon float64) (*weather.WeatherData, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if data, ok := s.cached(key); ok {
		return data, nil
	}

	data, err := s.fetcher.GetCompleteWeatherData(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	s.store(key, data)
	return data, nil
}

// GetMultiple fetches each city independently and concurrently through the
// cache. Failures are logged per city and omitted from the result map.
func (s *CachedService) GetMultiple(ctx context.Context, names []string) map[string]*weather.WeatherData {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	out := make(map[string]*weather.WeatherData, len(names))

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			data, err := s.GetByCity(ctx, name)
			if err != nil {
				s.logger.Warn("skipping city in batch fetch", slog.String("city", name), slog.Any("error", err))
				return
			}

			mu.Lock()
			out[name] = data
			mu.Unlock()
		}(name)
	}

	wg.Wait()
	return out
}

// Refresh invalidates all weather query kinds so the next read refetches.
func (s *CachedService) Refresh() {
	s.cache.Invalidate(KindCurrent, KindHourly, KindDaily)
}

func (s *CachedService) cached(key string) (*weather.WeatherData, bool) {
	current, errCurrent := s.cache.Get(KindCurrent, key)
	hourly, errHourly := s.cache.Get(KindHourly, key)
	daily, errDaily := s.cache.Get(KindDaily, key)
	if errCurrent != nil || errHourly != nil || errDaily != nil {
		return nil, false
	}

	cw, okC := current.(weather.CurrentWeather)
	hf, okH := hourly.([]weather.HourlyForecast)
	df, okD := daily.([]weather.DailyForecast)
	if !okC || !okH || !okD {
		return nil, false
	}

	return &weather.WeatherData{Current: cw, Hourly: hf, Daily: df}, true
}

func (s *CachedService) store(key string, data *weather.WeatherData) {
	s.cache.Set(KindCurrent, key, data.Current)
	s.cache.Set(KindHourly, key, data.Hourly)
	s.cache.Set(KindDaily, key, data.Daily)
}

func cityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
