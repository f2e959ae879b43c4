package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Client is the provider surface the service orchestrates. Implementations
// must label their errors with the failed stage.
type Client interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentResponse, error)
	Forecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error)
	ForecastByCity(ctx context.Context, city string) (*ForecastResponse, error)
}

// Service assembles unified weather snapshots from the provider client.
type Service struct {
	client Client
	logger *slog.Logger
}

func NewService(client Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetCurrentWeather fetches and normalizes the current conditions.
func (s *Service) GetCurrentWeather(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	resp, err := s.client.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return CurrentWeather{}, err
	}
	return TransformCurrent(resp), nil
}

// GetHourlyForecast derives the next-24h view from the 3-hour forecast feed.
func (s *Service) GetHourlyForecast(ctx context.Context, lat, lon float64) ([]HourlyForecast, error) {
	resp, err := s.client.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return TransformHourly(resp.List, resp.City.Timezone), nil
}

// GetDailyForecast derives the future-days view from the 3-hour forecast feed.
func (s *Service) GetDailyForecast(ctx context.Context, lat, lon float64) ([]DailyForecast, error) {
	resp, err := s.client.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return TransformDaily(resp.List), nil
}

// GetCompleteWeatherData issues the current, hourly and daily fetches
// concurrently and returns once all three have settled. The hourly and
// daily derivations each make their own forecast round-trip; de-duplication
// belongs to the cache layer wrapping this service.
func (s *Service) GetCompleteWeatherData(ctx context.Context, lat, lon float64) (*WeatherData, error) {
	var data WeatherData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		current, err := s.GetCurrentWeather(ctx, lat, lon)
		if err != nil {
			return err
		}
		data.Current = current
		return nil
	})
	g.Go(func() error {
		hourly, err := s.GetHourlyForecast(ctx, lat, lon)
		if err != nil {
			return err
		}
		data.Hourly = hourly
		return nil
	})
	g.Go(func() error {
		daily, err := s.GetDailyForecast(ctx, lat, lon)
		if err != nil {
			return err
		}
		data.Daily = daily
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch weather data: %w", err)
	}
	return &data, nil
}

// GetCompleteWeatherDataByCity resolves one forecast call for the city to
// obtain the provider's canonical coordinates, then re-issues the full
// concurrent fetch with them so all three records agree on the location.
func (s *Service) GetCompleteWeatherDataByCity(ctx context.Context, name string) (*WeatherData, error) {
	forecast, err := s.client.ForecastByCity(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch weather data for %s: %w", name, err)
	}

	coord := forecast.City.Coord
	data, err := s.GetCompleteWeatherData(ctx, coord.Lat, coord.Lon)
	if err != nil {
		return nil, fmt.Errorf("fetch weather data for %s: %w", name, err)
	}
	return data, nil
}

// GetWeatherForMultipleCities fetches each city independently and
// concurrently. A single city's failure is logged and that city is simply
// absent from the result map; no error escapes the batch.
func (s *Service) GetWeatherForMultipleCities(ctx context.Context, names []string) map[string]*WeatherData {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	out := make(map[string]*WeatherData, len(names))

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			data, err := s.GetCompleteWeatherDataByCity(ctx, name)
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
