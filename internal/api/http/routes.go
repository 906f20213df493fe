package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"forecaster/internal/forecast"
)

// optionKeys are the query parameters forwarded to the option resolver. The
// resolver owns validation and leniency; unknown parameters never reach it.
var optionKeys = []string{
	"date", "lat", "lng", "timezone",
	"humidity_break", "wind_break", "high_temp_break", "low_temp_break",
	"wind_speed_unit", "temperature_unit", "precipitation_unit",
}

// Announcer plays a WAV file on the local audio device.
type Announcer interface {
	Play(ctx context.Context, path string) error
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. The HTTP surface
// is the network equivalent of the device button: each request triggers one
// forecast acquisition.
func RegisterRoutes(app *fiber.App, service *forecast.Service, announcer Announcer) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		result, err := service.GetForecastData(c.Context(), overridesFromQuery(c))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(result)
	})

	v1.Get("/forecast/audio", func(c *fiber.Ctx) error {
		result, err := service.GetForecastData(c.Context(), overridesFromQuery(c))
		if err != nil {
			return toHTTPError(err)
		}
		return c.SendFile(service.AudioPath(result.AudioFile))
	})

	v1.Post("/announce", func(c *fiber.Ctx) error {
		result, err := service.GetForecastData(c.Context(), overridesFromQuery(c))
		if err != nil {
			return toHTTPError(err)
		}
		if err := announcer.Play(c.Context(), service.AudioPath(result.AudioFile)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "audio playback failed")
		}
		return c.JSON(fiber.Map{
			"status":       "announced",
			"forecast":     result.Forecast,
			"forecastDate": result.ForecastDate,
		})
	})
}

func overridesFromQuery(c *fiber.Ctx) map[string]string {
	overrides := make(map[string]string, len(optionKeys))
	for _, key := range optionKeys {
		if v := c.Query(key); v != "" {
			overrides[key] = v
		}
	}
	return overrides
}

// toHTTPError maps core errors onto HTTP status codes: bad input is the
// caller's fault, upstream failures are a bad gateway.
func toHTTPError(err error) error {
	var invalid *forecast.InvalidInputError
	if errors.As(err, &invalid) {
		return fiber.NewError(fiber.StatusBadRequest, invalid.Error())
	}
	var external *forecast.ExternalServiceError
	if errors.As(err, &external) {
		return fiber.NewError(fiber.StatusBadGateway, external.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to retrieve forecast")
}
