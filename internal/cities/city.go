package cities

import (
	"math"
	"strings"
)

// City is one gazetteer entry. ID is the dataset identifier when known and
// empty for synthetic entries such as a device-geolocation pseudo-city.
type City struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Key returns a canonical string key for indexing this city in caches.
func (c City) Key() string {
	return strings.ToLower(c.Name) + ":" + strings.ToLower(c.Country)
}

// coordTolerance absorbs floating formatting differences between the
// gazetteer dump and provider responses.
const coordTolerance = 0.001

// Equal reports whether two cities refer to the same place. When both carry
// a dataset ID the IDs decide; otherwise the name must match and the
// coordinates must agree within coordTolerance degrees.
func Equal(a, b City) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name &&
		math.Abs(a.Lat-b.Lat) < coordTolerance &&
		math.Abs(a.Lon-b.Lon) < coordTolerance
}
