package favorites

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/cities"
)

// StorageKey is the single key under which user favorites are persisted.
const StorageKey = "weather-app-favorite-cities"

// StoredCity is a city plus favorite/default tagging, the unit of
// persistence. Defaults are immutable seed entries and never written back.
type StoredCity struct {
	cities.City
	IsFavorite bool `json:"isFavorite,omitempty"`
	IsDefault  bool `json:"isDefault,omitempty"`
}

// DefaultCities is the fixed seed set shown before the user adds anything.
var DefaultCities = []cities.City{
	{Name: "RIO DE JANEIRO", Lat: -22.9068, Lon: -43.1729, Country: "Brazil"},
	{Name: "BEIJING", Lat: 39.9042, Lon: 116.4074, Country: "China"},
	{Name: "LOS ANGELES", Lat: 34.0522, Lon: -118.2437, Country: "United States"},
}

// Store manages the merged set of default and user-favorite cities backed
// by a key-value collaborator. All methods are safe for concurrent use.
type Store struct {
	kv       KV
	defaults []cities.City
	logger   *slog.Logger

	mu     sync.Mutex
	cities []StoredCity
	loaded bool
}

// NewStore creates a Store seeded with defaults. Nothing is read until the
// first operation.
func NewStore(kv KV, defaults []cities.City, logger *slog.Logger) *Store {
	return &Store{
		kv:       kv,
		defaults: defaults,
		logger:   logger,
	}
}

// Load reads persisted favorites, merges them with the defaults and returns
// the combined set. Corrupt or unreadable state falls back to defaults only;
// the failure is logged, never returned.
func (s *Store) Load() []StoredCity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()
	return s.snapshotLocked()
}

// Cities returns a copy of the current set, loading it first if needed.
func (s *Store) Cities() []StoredCity {
	return s.Load()
}

// Add appends city as a favorite unless an equal city (default or favorite)
// is already present, then persists the favorite subset.
func (s *Store) Add(city cities.City) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()

	for _, existing := range s.cities {
		if cities.Equal(existing.City, city) {
			return
		}
	}

	s.cities = append(s.cities, StoredCity{
		City:       city,
		IsFavorite: true,
	})
	s.persistLocked()
}

// Remove filters out the matching favorite. Default cities are never
// removed regardless of match.
func (s *Store) Remove(city cities.City) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()

	kept := s.cities[:0]
	for _, existing := range s.cities {
		if existing.IsDefault || !cities.Equal(existing.City, city) {
			kept = append(kept, existing)
		}
	}
	s.cities = kept
	s.persistLocked()
}

// Clear drops every non-default entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()

	kept := s.cities[:0]
	for _, existing := range s.cities {
		if existing.IsDefault {
			kept = append(kept, existing)
		}
	}
	s.cities = kept
	s.persistLocked()
}

func (s *Store) ensureLoadedLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	marked := make([]StoredCity, 0, len(s.defaults))
	for _, city := range s.defaults {
		marked = append(marked, StoredCity{City: city, IsDefault: true})
	}
	s.cities = marked

	raw, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("failed to read persisted favorites; using defaults", slog.Any("error", err))
		return
	}
	if len(raw) == 0 {
		return
	}

	var persisted []StoredCity
	if err := json.Unmarshal(raw, &persisted); err != nil {
		s.logger.Warn("corrupt persisted favorites; using defaults", slog.Any("error", err))
		return
	}

	for _, fav := range persisted {
		if s.matchesDefaultLocked(fav.City) {
			continue
		}
		s.cities = append(s.cities, fav)
	}
}

func (s *Store) matchesDefaultLocked(city cities.City) bool {
	for _, def := range s.defaults {
		if cities.Equal(def, city) {
			return true
		}
	}
	return false
}

// persistLocked writes only the user-added favorites; the default seed list
// stays reconstructable from code.
func (s *Store) persistLocked() {
	favs := make([]StoredCity, 0)
	for _, city := range s.cities {
		if city.IsFavorite && !city.IsDefault {
			favs = append(favs, city)
		}
	}

	data, err := json.Marshal(favs)
	if err != nil {
		s.logger.Error("failed to encode favorites", slog.Any("error", err))
		return
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.logger.Error("failed to persist favorites", slog.Any("error", err))
	}
}

func (s *Store) snapshotLocked() []StoredCity {
	out := make([]StoredCity, len(s.cities))
	copy(out, s.cities)
	return out
}
