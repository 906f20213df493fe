package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"forecaster/internal/forecast"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum"

// ArchiveClient fetches historical daily data from the Open-Meteo archive API.
type ArchiveClient struct {
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// NewArchiveClient creates an archive client. baseURL overrides the public
// API endpoint when non-empty (used by tests).
func NewArchiveClient(baseURL string, timeout time.Duration) *ArchiveClient {
	if baseURL == "" {
		baseURL = archiveBaseURL
	}
	return &ArchiveClient{
		client:  newRestyClient(baseURL, timeout),
		circuit: newBreaker("openmeteo-archive"),
	}
}

// FetchDaily requests daily max/min temperature and precipitation sums for the
// full given calendar year at the option coordinate.
func (c *ArchiveClient) FetchDaily(ctx context.Context, year int, opts forecast.ResolvedOptions) (*forecast.DailySeries, error) {
	query := map[string]string{
		"daily":              dailyFields,
		"latitude":           formatFloat(opts.Lat),
		"longitude":          formatFloat(opts.Lng),
		"start_date":         fmt.Sprintf("%d-01-01", year),
		"end_date":           fmt.Sprintf("%d-12-31", year),
		"timezone":           "auto",
		"temperature_unit":   opts.TemperatureUnit,
		"precipitation_unit": opts.PrecipitationUnit,
	}

	var payload struct {
		Daily forecast.DailySeries `json:"daily"`
	}
	if err := doGet(ctx, c.client, c.circuit, "historical weather", "/v1/archive", query, &payload); err != nil {
		return nil, err
	}
	return &payload.Daily, nil
}
