package cities

import (
	"math"
	"strconv"
	"strings"
)

// Columns consumed per row: id, name, admin1, admin2, country, lat, lon.
const minColumns = 7

// ParseCities parses the delimited gazetteer dump into City records.
// The first line is a header and is skipped. Rows with fewer than seven
// columns or with coordinates that do not parse as finite in-range numbers
// are dropped whole; no partial record is ever emitted.
func ParseCities(raw string) []City {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var cities []City
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		cols := splitRow(line)
		if len(cols) < minColumns {
			continue
		}

		lat, latErr := strconv.ParseFloat(cols[5], 64)
		lon, lonErr := strconv.ParseFloat(cols[6], 64)
		if latErr != nil || lonErr != nil || !validCoords(lat, lon) {
			continue
		}

		cities = append(cities, City{
			ID:      cols[0],
			Name:    cols[1],
			Lat:     lat,
			Lon:     lon,
			Country: cols[4],
		})
	}

	return cities
}

// splitRow splits one comma-delimited row. A double quote toggles an
// "inside literal" flag; commas inside a literal are text, not boundaries.
// The dataset carries stray quotes that encoding/csv rejects, so splitting
// stays character-level. Fields are trimmed of surrounding whitespace.
func splitRow(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

func validCoords(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
