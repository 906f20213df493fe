// Package openmeteo implements the weather data providers against the
// Open-Meteo forecast and archive HTTP APIs.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"forecaster/internal/forecast"
)

const (
	forecastBaseURL = "https://api.open-meteo.com"
	archiveBaseURL  = "https://archive-api.open-meteo.com"

	userAgent      = "forecaster/1.0"
	defaultTimeout = 30 * time.Second
)

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doGet executes a GET through the circuit breaker. There are no retries: a
// non-2xx response or transport failure surfaces immediately as an
// *forecast.ExternalServiceError for the named service.
func doGet(ctx context.Context, client *resty.Client, cb *gobreaker.CircuitBreaker, service, path string, query map[string]string, out any) error {
	_, err := cb.Execute(func() (interface{}, error) {
		resp, err := client.R().
			SetContext(ctx).
			SetQueryParams(query).
			SetResult(out).
			Get(path)
		if err != nil {
			return nil, &forecast.ExternalServiceError{Service: service, Err: err}
		}
		if !resp.IsSuccess() {
			return nil, &forecast.ExternalServiceError{
				Service:    service,
				StatusCode: resp.StatusCode(),
				Body:       resp.String(),
			}
		}
		return nil, nil
	})
	if err == nil {
		return nil
	}

	var svcErr *forecast.ExternalServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	// Breaker-open and similar internal states still count as the upstream
	// being unavailable.
	return &forecast.ExternalServiceError{Service: service, Err: err}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%v", v)
}
