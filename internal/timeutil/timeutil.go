// Package timeutil renders UTC instants in a city's local time using the
// provider-supplied UTC offset, without consulting the host timezone.
package timeutil

import "time"

// FormatLocalTime formats a Unix timestamp shifted by offsetSec seconds
// from UTC as a 12-hour clock string with minute precision, e.g. "2:05 PM".
func FormatLocalTime(unixSec int64, offsetSec int) string {
	zone := time.FixedZone("", offsetSec)
	return time.Unix(unixSec, 0).In(zone).Format("3:04 PM")
}

// FormatHourlyTime is the display format used by the hourly forecast rows.
func FormatHourlyTime(unixSec int64, offsetSec int) string {
	return FormatLocalTime(unixSec, offsetSec)
}

// FormatDayLabel builds a human day/month label directly from calendar
// components, e.g. "Tue, Jul 15". Building from components rather than
// re-parsing a date string avoids off-by-one-day shifts from local
// timezone coercion.
func FormatDayLabel(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("Mon, Jan 2")
}

// CurrentLocalTime returns the current instant in the zone offsetSec
// seconds from UTC.
func CurrentLocalTime(offsetSec int) time.Time {
	return time.Now().In(time.FixedZone("", offsetSec))
}

// FormatCurrentLocalTime renders the current wall-clock time for a city.
func FormatCurrentLocalTime(offsetSec int) string {
	return FormatLocalTime(time.Now().Unix(), offsetSec)
}
