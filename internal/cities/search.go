package cities

import (
	"sort"
	"strings"
)

// DefaultSearchLimit caps the number of results returned to the UI.
const DefaultSearchLimit = 50

// minQueryLen is a UI-level policy: one-character queries are noise.
const minQueryLen = 2

const (
	scoreExact           = 1000
	scorePrefix          = 500
	scoreNameContains    = 100
	scoreCountryContains = 50
)

type scoredCity struct {
	City
	score int
}

// Search scans the loaded records and returns the best matches for query,
// ordered by descending score and then ascending name. A limit <= 0 falls
// back to DefaultSearchLimit. Queries shorter than two characters return
// no results.
func Search(query string, cities []City, limit int) []City {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < minQueryLen {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var results []scoredCity
	for _, city := range cities {
		name := strings.ToLower(city.Name)
		country := strings.ToLower(city.Country)

		var score int
		switch {
		case name == query:
			score = scoreExact
		case strings.HasPrefix(name, query):
			score = scorePrefix
		case strings.Contains(name, query):
			score = scoreNameContains
		case strings.Contains(country, query):
			score = scoreCountryContains
		default:
			continue
		}

		results = append(results, scoredCity{City: city, score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].Name < results[j].Name
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]City, len(results))
	for i, r := range results {
		out[i] = r.City
	}
	return out
}
