// Package scheduler periodically refreshes cached weather for the user's
// favorite cities so the dashboard never renders data older than the
// configured interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/favorites"
	"github.com/i474232898/weather-dashboard/internal/store"
)

// Scheduler owns the periodic refresh job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	weather   *store.CachedService
	favorites *favorites.Store
	interval  time.Duration
	logger    *slog.Logger
}

func New(favs *favorites.Store, weather *store.CachedService, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		weather:   weather,
		favorites: favs,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// refresh invalidates the cached query kinds and refetches every tracked
// city; per-city failures are tolerated by the batch fetch.
func (s *Scheduler) refresh() {
	tracked := s.favorites.Cities()
	if len(tracked) == 0 {
		s.logger.Info("scheduler: no cities to refresh")
		return
	}

	names := make([]string, 0, len(tracked))
	for _, city := range tracked {
		names = append(names, city.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.weather.Refresh()
	results := s.weather.GetMultiple(ctx, names)
	s.logger.Info("scheduler: weather refresh completed",
		slog.Int("requested", len(names)),
		slog.Int("fetched", len(results)))
}
