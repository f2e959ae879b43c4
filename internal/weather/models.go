package weather

// Wire types for the OpenWeather current-weather and 5-day/3-hour forecast
// endpoints. Only the fields the transformers consume are declared.

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All int `json:"all"`
}

type CurrentMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// CurrentResponse is the /weather endpoint payload.
type CurrentResponse struct {
	Coord    Coordinates        `json:"coord"`
	Weather  []WeatherCondition `json:"weather"`
	Main     CurrentMain        `json:"main"`
	Wind     Wind               `json:"wind"`
	Clouds   Clouds             `json:"clouds"`
	Dt       int64              `json:"dt"`
	Timezone int                `json:"timezone"` // offset from UTC in seconds
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
}

type ForecastMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// ForecastItem is one 3-hour-resolution sample from the 5-day forecast feed.
type ForecastItem struct {
	Dt      int64              `json:"dt"`
	Main    ForecastMain       `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Clouds  Clouds             `json:"clouds"`
	Wind    Wind               `json:"wind"`
	Pop     float64            `json:"pop"`
	DtTxt   string             `json:"dt_txt"` // "2006-01-02 15:04:05", UTC
}

type ForecastCity struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Coord    Coordinates `json:"coord"`
	Country  string      `json:"country"`
	Timezone int         `json:"timezone"` // offset from UTC in seconds
}

// ForecastResponse is the /forecast endpoint payload.
type ForecastResponse struct {
	Cod  string         `json:"cod"`
	Cnt  int            `json:"cnt"`
	List []ForecastItem `json:"list"`
	City ForecastCity   `json:"city"`
}

// APIError is the JSON body OpenWeather returns on non-success statuses.
// Cod arrives as a number on some endpoints and a quoted string on others.
type APIError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// Normalized, unit-rounded views the dashboard renders. Never persisted;
// recomputed on every fetch.

type CurrentWeather struct {
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
	Humidity  int    `json:"humidity"`
	WindSpeed int    `json:"windSpeed"`
	Clouds    int    `json:"clouds"`
	Icon      string `json:"icon"`
	FeelsLike int    `json:"feelsLike"`
	Max       int    `json:"max"`
	Min       int    `json:"min"`
	CityName  string `json:"cityName,omitempty"`
	Timezone  int    `json:"timezone"` // offset from UTC in seconds
}

type HourlyForecast struct {
	Time      string  `json:"time"`
	Temp      int     `json:"temp"`
	Humidity  int     `json:"humidity"`
	WindSpeed float64 `json:"windSpeed"`
	Clouds    int     `json:"clouds"`
	Icon      string  `json:"icon"`
}

type DailyForecast struct {
	Day       string `json:"day"`
	Condition string `json:"condition"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Icon      string `json:"icon"`
}

// WeatherData is the unified snapshot for one location.
type WeatherData struct {
	Current CurrentWeather   `json:"current"`
	Hourly  []HourlyForecast `json:"hourly"`
	Daily   []DailyForecast  `json:"daily"`
}
