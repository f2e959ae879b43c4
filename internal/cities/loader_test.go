package cities

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `city_id,city_name,state_code,country_code,country_full,lat,lon
1,Lisbon,11,PT,Portugal,38.7223,-9.1393
2,Porto,13,PT,Portugal,41.1579,-8.6291
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGazetteerLoadsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o600))

	g := NewGazetteer(http.DefaultClient, path, discardLogger())
	got := g.Cities(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "Lisbon", got[0].Name)
}

func TestGazetteerLoadsFromHTTPOnce(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, sampleDataset)
	}))
	defer srv.Close()

	g := NewGazetteer(srv.Client(), srv.URL, discardLogger())
	require.Len(t, g.Cities(context.Background()), 2)
	require.Len(t, g.Cities(context.Background()), 2)
	assert.Equal(t, 1, hits)
}

func TestGazetteerFetchFailureYieldsEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGazetteer(srv.Client(), srv.URL, discardLogger())

	// Search stays usable in a "no results" state, it never errors.
	assert.Empty(t, g.Search(context.Background(), "lisbon", 0))
}

func TestGazetteerMissingFileYieldsEmptyResults(t *testing.T) {
	g := NewGazetteer(http.DefaultClient, filepath.Join(t.TempDir(), "absent.csv"), discardLogger())
	assert.Empty(t, g.Cities(context.Background()))
}
