package cities

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Gazetteer owns the parsed city dataset for one search session. The
// dataset is loaded lazily on first use and kept in memory afterwards; a
// failed load is logged and degrades search to a "no results" state rather
// than surfacing an error to the caller.
type Gazetteer struct {
	source string
	client *http.Client
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	cities []City
}

// NewGazetteer creates a Gazetteer over source, which is either an HTTP(S)
// URL or a local file path.
func NewGazetteer(client *http.Client, source string, logger *slog.Logger) *Gazetteer {
	return &Gazetteer{
		source: source,
		client: client,
		logger: logger,
	}
}

// Cities returns the parsed records, loading the dataset on first call.
func (g *Gazetteer) Cities(ctx context.Context) []City {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.loaded {
		g.loaded = true

		raw, err := g.fetch(ctx)
		if err != nil {
			g.logger.Error("failed to load city dataset", slog.String("source", g.source), slog.Any("error", err))
			return nil
		}
		g.cities = ParseCities(raw)
		g.logger.Info("city dataset loaded", slog.Int("cities", len(g.cities)))
	}

	return g.cities
}

// Search loads the dataset if needed and runs a scored search over it.
func (g *Gazetteer) Search(ctx context.Context, query string, limit int) []City {
	return Search(query, g.Cities(ctx), limit)
}

func (g *Gazetteer) fetch(ctx context.Context) (string, error) {
	if strings.HasPrefix(g.source, "http://") || strings.HasPrefix(g.source, "https://") {
		return g.fetchHTTP(ctx)
	}

	data, err := os.ReadFile(g.source)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *Gazetteer) fetchHTTP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.source, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d fetching city dataset", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
