package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient is a mock implementation of Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentResponse, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CurrentResponse), args.Error(1)
}

func (m *MockClient) Forecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ForecastResponse), args.Error(1)
}

func (m *MockClient) ForecastByCity(ctx context.Context, city string) (*ForecastResponse, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ForecastResponse), args.Error(1)
}

func setupServiceTest() (*Service, *MockClient) {
	client := new(MockClient)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(client, logger), client
}

func currentFixture() *CurrentResponse {
	return &CurrentResponse{
		Weather:  []WeatherCondition{{Description: "clear sky", Icon: "01d"}},
		Main:     CurrentMain{Temp: 20.2, Humidity: 40},
		Timezone: 3600,
		Name:     "Testville",
	}
}

func forecastFixture(lat, lon float64) *ForecastResponse {
	return &ForecastResponse{
		List: []ForecastItem{{
			Dt:      1700000000,
			DtTxt:   "2023-11-14 22:00:00",
			Main:    ForecastMain{Temp: 18.0, Humidity: 50},
			Weather: []WeatherCondition{{Description: "few clouds", Icon: "02d"}},
		}},
		City: ForecastCity{Name: "Testville", Coord: Coordinates{Lat: lat, Lon: lon}, Timezone: 3600},
	}
}

func TestGetCompleteWeatherData(t *testing.T) {
	svc, client := setupServiceTest()

	client.On("CurrentWeather", mock.Anything, 1.0, 2.0).Return(currentFixture(), nil).Once()
	// Hourly and daily derivations each issue their own forecast round-trip.
	client.On("Forecast", mock.Anything, 1.0, 2.0).Return(forecastFixture(1, 2), nil).Twice()

	data, err := svc.GetCompleteWeatherData(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 20, data.Current.Temp)
	assert.Len(t, data.Hourly, 1)
	client.AssertExpectations(t)
}

func TestGetCompleteWeatherDataFailureIsLabeled(t *testing.T) {
	svc, client := setupServiceTest()

	client.On("CurrentWeather", mock.Anything, 1.0, 2.0).
		Return(nil, errors.New("weather API error: boom (code 500)"))
	client.On("Forecast", mock.Anything, 1.0, 2.0).Return(forecastFixture(1, 2), nil).Maybe()

	_, err := svc.GetCompleteWeatherData(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch weather data")
	assert.Contains(t, err.Error(), "weather API error")
}

func TestGetCompleteWeatherDataByCityUsesCanonicalCoords(t *testing.T) {
	svc, client := setupServiceTest()

	client.On("ForecastByCity", mock.Anything, "Testville").
		Return(forecastFixture(10.5, 20.5), nil).Once()
	// All three records must be fetched with the provider's coordinates.
	client.On("CurrentWeather", mock.Anything, 10.5, 20.5).Return(currentFixture(), nil).Once()
	client.On("Forecast", mock.Anything, 10.5, 20.5).Return(forecastFixture(10.5, 20.5), nil).Twice()

	data, err := svc.GetCompleteWeatherDataByCity(context.Background(), "Testville")
	require.NoError(t, err)
	assert.Equal(t, "Testville", data.Current.CityName)
	client.AssertExpectations(t)
}

func TestGetCompleteWeatherDataByCityErrorNamesCity(t *testing.T) {
	svc, client := setupServiceTest()

	client.On("ForecastByCity", mock.Anything, "Atlantis").
		Return(nil, errors.New("forecast API error: city not found (code 404)"))

	_, err := svc.GetCompleteWeatherDataByCity(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
	assert.Contains(t, err.Error(), "city not found")
}

func TestGetWeatherForMultipleCitiesPartialSuccess(t *testing.T) {
	svc, client := setupServiceTest()

	client.On("ForecastByCity", mock.Anything, "X").
		Return(nil, errors.New("forecast API error: city not found (code 404)"))
	for _, name := range []string{"Y", "Z"} {
		client.On("ForecastByCity", mock.Anything, name).Return(forecastFixture(1, 2), nil)
	}
	client.On("CurrentWeather", mock.Anything, 1.0, 2.0).Return(currentFixture(), nil)
	client.On("Forecast", mock.Anything, 1.0, 2.0).Return(forecastFixture(1, 2), nil)

	got := svc.GetWeatherForMultipleCities(context.Background(), []string{"X", "Y", "Z"})

	require.Len(t, got, 2)
	assert.Contains(t, got, "Y")
	assert.Contains(t, got, "Z")
	assert.NotContains(t, got, "X")
}
