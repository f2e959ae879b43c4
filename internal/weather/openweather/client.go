// Package openweather implements the weather.Client interface against the
// OpenWeather current-weather and 5-day/3-hour forecast endpoints.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ErrMissingAPIKey is a configuration error: the client refuses to be
// constructed without a key, before any network call is attempted.
var ErrMissingAPIKey = errors.New("openweather api key is not configured")

// Client is a resilient OpenWeather API client.
type Client struct {
	apiKey  string
	baseURL string
	units   string
	lang    string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUnits sets the unit system: standard, metric or imperial.
func WithUnits(units string) Option {
	return func(c *Client) { c.units = units }
}

// WithLanguage sets the response language code.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

func New(client *http.Client, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		units:   "metric",
		lang:    "en",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CurrentWeather fetches current conditions for a coordinate pair.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*weather.CurrentResponse, error) {
	var resp weather.CurrentResponse
	if err := c.getJSON(ctx, "/weather", coordParams(lat, lon), "weather", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast fetches the 5-day/3-hour forecast for a coordinate pair.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*weather.ForecastResponse, error) {
	var resp weather.ForecastResponse
	if err := c.getJSON(ctx, "/forecast", coordParams(lat, lon), "forecast", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForecastByCity fetches the forecast by city name. The response carries
// the provider's canonical coordinates for the city.
func (c *Client) ForecastByCity(ctx context.Context, city string) (*weather.ForecastResponse, error) {
	params := url.Values{}
	params.Set("q", city)

	var resp weather.ForecastResponse
	if err := c.getJSON(ctx, "/forecast", params, "forecast", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}

// getJSON performs one API call and decodes the response into out. Non-2xx
// responses are surfaced as labeled errors carrying the provider's message
// verbatim, prefixed with the stage name.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, stage string, out any) error {
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	params.Set("lang", c.lang)

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", stage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr weather.APIError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Message == "" {
			return fmt.Errorf("%s API error: unexpected status %d", stage, resp.StatusCode)
		}
		return fmt.Errorf("%s API error: %s (code %v)", stage, apiErr.Message, apiErr.Cod)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", stage, err)
	}
	return nil
}
