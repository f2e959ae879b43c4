package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/favorites"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/timeutil"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/openweather"
)

const usage = `usage: weather-dashboard <command> [args]

commands:
  search [query]     search the city gazetteer (interactive when no query)
  list               list tracked cities
  add <city>         add the best gazetteer match as a favorite
  remove <city>      remove a favorite (defaults are kept)
  fetch [city ...]   fetch weather for the given or all tracked cities
  watch              keep refreshing tracked cities until interrupted
`

func main() {
	logger := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", slog.String("command", os.Args[1]), slog.Any("error", err))
		os.Exit(1)
	}
}

type app struct {
	cfg       *config.AppConfig
	logger    *slog.Logger
	gazetteer *cities.Gazetteer
	favorites *favorites.Store
	weather   *store.CachedService
}

func newApp(cfg *config.AppConfig, logger *slog.Logger) (*app, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	owClient, err := openweather.New(httpClient, cfg.OpenWeatherAPIKey,
		openweather.WithUnits(cfg.Units),
		openweather.WithLanguage(cfg.Language),
	)
	if err != nil {
		return nil, err
	}

	svc := weather.NewService(owClient, logger)
	cache := store.NewCache(cfg.CacheTTL)

	return &app{
		cfg:       cfg,
		logger:    logger,
		gazetteer: cities.NewGazetteer(httpClient, cfg.CityDataURL, logger),
		favorites: favorites.NewStore(favorites.NewFileKV(cfg.FavoritesPath), favorites.DefaultCities, logger),
		weather:   store.NewCachedService(svc, cache, logger),
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "search":
		if len(args) == 0 {
			return a.interactiveSearch(ctx)
		}
		a.printSearch(ctx, strings.Join(args, " "))
		return nil
	case "list":
		for _, city := range a.favorites.Cities() {
			tag := ""
			if city.IsDefault {
				tag = " (default)"
			}
			fmt.Printf("%-24s %-20s %9.4f %9.4f%s\n", city.Name, city.Country, city.Lat, city.Lon, tag)
		}
		return nil
	case "add":
		return a.addFavorite(ctx, strings.Join(args, " "))
	case "remove":
		return a.removeFavorite(strings.Join(args, " "))
	case "fetch":
		return a.fetch(ctx, args)
	case "watch":
		return a.watch(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// interactiveSearch reads queries line by line and evaluates them only
// after the configured quiet interval, so fast typing never triggers a
// full dataset scan per keystroke.
func (a *app) interactiveSearch(ctx context.Context) error {
	call, stop := cities.Debounce(func(query string) {
		a.printSearch(ctx, query)
	}, a.cfg.SearchDebounce)
	defer stop()

	fmt.Println("type to search, empty line to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}
		call(line)
	}
	return scanner.Err()
}

func (a *app) printSearch(ctx context.Context, query string) {
	results := a.gazetteer.Search(ctx, query, cities.DefaultSearchLimit)
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, city := range results {
		fmt.Printf("%-24s %-20s %9.4f %9.4f\n", city.Name, city.Country, city.Lat, city.Lon)
	}
}

func (a *app) addFavorite(ctx context.Context, query string) error {
	matches := a.gazetteer.Search(ctx, query, 1)
	if len(matches) == 0 {
		return fmt.Errorf("no city matching %q", query)
	}

	a.favorites.Add(matches[0])
	fmt.Printf("added %s, %s\n", matches[0].Name, matches[0].Country)
	return nil
}

func (a *app) removeFavorite(query string) error {
	for _, city := range a.favorites.Cities() {
		if strings.EqualFold(city.Name, query) {
			a.favorites.Remove(city.City)
			fmt.Printf("removed %s\n", city.Name)
			return nil
		}
	}
	return fmt.Errorf("no tracked city named %q", query)
}

func (a *app) fetch(ctx context.Context, names []string) error {
	if len(names) == 0 {
		for _, city := range a.favorites.Cities() {
			names = append(names, city.Name)
		}
	}

	results := a.weather.GetMultiple(ctx, names)
	if len(results) == 0 {
		return fmt.Errorf("no weather data fetched")
	}

	for _, name := range names {
		data, ok := results[name]
		if !ok {
			fmt.Printf("%s: unavailable\n", name)
			continue
		}
		printWeather(name, data)
	}
	return nil
}

func (a *app) watch(ctx context.Context) error {
	sched := scheduler.New(a.favorites, a.weather, a.cfg.RefreshInterval, a.logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	a.logger.Info("watching tracked cities", slog.Duration("interval", a.cfg.RefreshInterval))
	<-ctx.Done()
	return nil
}

func printWeather(name string, data *weather.WeatherData) {
	c := data.Current
	fmt.Printf("%s  %d° (feels %d°, %d°/%d°)  %s  humidity %d%%  clouds %d%%  local %s\n",
		name, c.Temp, c.FeelsLike, c.Max, c.Min, c.Condition, c.Humidity, c.Clouds,
		timeutil.FormatCurrentLocalTime(c.Timezone))

	for _, h := range data.Hourly {
		fmt.Printf("  %-8s %d°  wind %.1f\n", h.Time, h.Temp, h.WindSpeed)
	}
	for _, d := range data.Daily {
		fmt.Printf("  %-12s %d°/%d°  %s\n", d.Day, d.High, d.Low, d.Condition)
	}
}

// setupLogger configures the application logger: colored logs in
// development, JSON elsewhere.
func setupLogger() *slog.Logger {
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}

	log.SetOutput(os.Stderr)
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
