package weather

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/timeutil"
)

const (
	// defaultIcon is the clear-sky day code, used when a sample carries none.
	defaultIcon      = "01d"
	defaultCondition = "Unknown"

	// hourlyWindow is the next 24 hours at 3-hour resolution.
	hourlyWindow = 8

	// maxDailyDays caps the daily view.
	maxDailyDays = 5
)

// TransformCurrent normalizes a current-weather response: temperatures are
// rounded to the nearest integer, percentages and the timezone offset pass
// through unchanged.
func TransformCurrent(resp *CurrentResponse) CurrentWeather {
	condition, icon := primaryCondition(resp.Weather)

	return CurrentWeather{
		Temp:      round(resp.Main.Temp),
		Condition: condition,
		Humidity:  resp.Main.Humidity,
		WindSpeed: round(resp.Wind.Speed),
		Clouds:    resp.Clouds.All,
		Icon:      icon,
		FeelsLike: round(resp.Main.FeelsLike),
		Max:       round(resp.Main.TempMax),
		Min:       round(resp.Main.TempMin),
		CityName:  resp.Name,
		Timezone:  resp.Timezone,
	}
}

// TransformHourly maps the first eight forecast samples to display rows.
// Wind speed stays unrounded here; only the current view rounds it.
func TransformHourly(items []ForecastItem, tzOffsetSec int) []HourlyForecast {
	if len(items) > hourlyWindow {
		items = items[:hourlyWindow]
	}

	out := make([]HourlyForecast, 0, len(items))
	for _, item := range items {
		_, icon := primaryCondition(item.Weather)
		out = append(out, HourlyForecast{
			Time:      timeutil.FormatHourlyTime(item.Dt, tzOffsetSec),
			Temp:      round(item.Main.Temp),
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			Clouds:    item.Clouds.All,
			Icon:      icon,
		})
	}
	return out
}

// TransformDaily buckets the flat forecast list by the provider's literal
// date string and reduces each bucket to high/low temperature, the first
// sample's icon and the most frequent condition. Today is excluded; only
// future days are shown.
func TransformDaily(items []ForecastItem) []DailyForecast {
	return transformDailyAt(items, time.Now().UTC())
}

func transformDailyAt(items []ForecastItem, now time.Time) []DailyForecast {
	groups := groupByDate(items, now.Format("2006-01-02"))

	out := make([]DailyForecast, 0, len(groups))
	for _, group := range groups {
		high := math.Inf(-1)
		low := math.Inf(1)
		conditions := make([]string, 0, len(group.items))
		for _, item := range group.items {
			high = math.Max(high, item.Main.Temp)
			low = math.Min(low, item.Main.Temp)
			desc, _ := primaryCondition(item.Weather)
			conditions = append(conditions, desc)
		}

		_, icon := primaryCondition(group.items[0].Weather)

		out = append(out, DailyForecast{
			Day:       dayLabel(group.date),
			Condition: mostFrequent(conditions),
			High:      round(high),
			Low:       round(low),
			Icon:      icon,
		})
	}
	return out
}

type dailyGroup struct {
	date  string
	items []ForecastItem
}

// groupByDate groups samples by the date prefix of dt_txt, preserving
// first-seen order, dropping the group for today and capping the result.
// The date string is taken verbatim from the provider rather than derived
// from the timestamp, to sidestep timezone drift.
func groupByDate(items []ForecastItem, today string) []dailyGroup {
	index := make(map[string]int)
	var groups []dailyGroup

	for _, item := range items {
		date, _, _ := strings.Cut(item.DtTxt, " ")
		if date == "" {
			continue
		}
		if i, ok := index[date]; ok {
			groups[i].items = append(groups[i].items, item)
			continue
		}
		index[date] = len(groups)
		groups = append(groups, dailyGroup{date: date, items: []ForecastItem{item}})
	}

	kept := make([]dailyGroup, 0, maxDailyDays)
	for _, group := range groups {
		if group.date == today {
			continue
		}
		kept = append(kept, group)
		if len(kept) == maxDailyDays {
			break
		}
	}
	return kept
}

// dayLabel converts "2006-01-02" into "Mon, Jan 2" via its parsed
// components. Unparseable dates fall back to the raw string.
func dayLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return date
	}
	return timeutil.FormatDayLabel(year, month, day)
}

// mostFrequent returns the item with the strictly greatest count. Counting
// uses a map but the winner is picked by scanning the slice, so the first
// item to reach a maximal count wins ties deterministically.
func mostFrequent(items []string) string {
	if len(items) == 0 {
		return defaultCondition
	}

	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[item]++
	}

	best := ""
	bestCount := 0
	for _, item := range items {
		if counts[item] > bestCount {
			bestCount = counts[item]
			best = item
		}
	}
	if best == "" {
		return defaultCondition
	}
	return best
}

func primaryCondition(conditions []WeatherCondition) (description, icon string) {
	description = defaultCondition
	icon = defaultIcon
	if len(conditions) == 0 {
		return description, icon
	}
	if conditions[0].Description != "" {
		description = conditions[0].Description
	}
	if conditions[0].Icon != "" {
		icon = conditions[0].Icon
	}
	return description, icon
}

func round(f float64) int {
	return int(math.Round(f))
}
