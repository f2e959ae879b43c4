package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// OpenWeatherAPIKey is required; its absence is a hard configuration
	// error raised before any network call is attempted.
	OpenWeatherAPIKey string `validate:"required"`

	Units    string `validate:"oneof=standard metric imperial"`
	Language string `validate:"required"`

	// CacheTTL is the freshness window for cached weather queries.
	CacheTTL time.Duration

	// RefreshInterval controls the background refresh of favorite cities.
	RefreshInterval time.Duration

	// SearchDebounce is the quiet interval before a search query executes.
	SearchDebounce time.Duration

	HTTPTimeout time.Duration

	// CityDataURL is the gazetteer source: an HTTP(S) URL or a file path.
	CityDataURL string

	// FavoritesPath is the key-value file holding persisted favorites.
	FavoritesPath string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		Units:             getenvDefault("WEATHER_UNITS", "metric"),
		Language:          getenvDefault("WEATHER_LANG", "en"),
		CityDataURL:       getenvDefault("CITY_DATA_URL", "cities_20000.csv"),
		FavoritesPath:     getenvDefault("FAVORITES_PATH", "favorites.json"),
	}

	var err error
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = getenvDuration("SEARCH_DEBOUNCE", "300ms"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
