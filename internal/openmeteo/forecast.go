package openmeteo

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"forecaster/internal/forecast"
)

// hourlyFields is the comma-joined list of hourly variables the weather
// context is built from. Anything else the API could return is not requested.
const hourlyFields = "temperature_2m,apparent_temperature,precipitation_probability,precipitation,uv_index,cloud_cover,relative_humidity_2m,wind_speed_10m,wind_direction_10m,wind_gusts_10m,weather_code"

// ForecastClient fetches hourly forecast data from the Open-Meteo forecast API.
type ForecastClient struct {
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// NewForecastClient creates a forecast client. baseURL overrides the public
// API endpoint when non-empty (used by tests).
func NewForecastClient(baseURL string, timeout time.Duration) *ForecastClient {
	if baseURL == "" {
		baseURL = forecastBaseURL
	}
	return &ForecastClient{
		client:  newRestyClient(baseURL, timeout),
		circuit: newBreaker("openmeteo-forecast"),
	}
}

// FetchHourly requests the hourly series spanning the day before the forecast
// date through the day after, in the caller's units and timezone.
func (c *ForecastClient) FetchHourly(ctx context.Context, opts forecast.ResolvedOptions) (*forecast.HourlySeries, error) {
	query := map[string]string{
		"hourly":             hourlyFields,
		"latitude":           formatFloat(opts.Lat),
		"longitude":          formatFloat(opts.Lng),
		"start_date":         opts.ForecastDate.AddDate(0, 0, -1).Format("2006-01-02"),
		"end_date":           opts.ForecastDate.AddDate(0, 0, 1).Format("2006-01-02"),
		"timezone":           opts.Timezone,
		"wind_speed_unit":    opts.WindSpeedUnit,
		"temperature_unit":   opts.TemperatureUnit,
		"precipitation_unit": opts.PrecipitationUnit,
	}

	var payload struct {
		Hourly forecast.HourlySeries `json:"hourly"`
	}
	if err := doGet(ctx, c.client, c.circuit, "weather forecast", "/v1/forecast", query, &payload); err != nil {
		return nil, err
	}
	return &payload.Hourly, nil
}
