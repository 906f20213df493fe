package forecast_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forecaster/internal/cache"
	"forecaster/internal/forecast"
)

type fakeHourly struct {
	series *forecast.HourlySeries
	err    error
	calls  int
}

func (f *fakeHourly) FetchHourly(_ context.Context, _ forecast.ResolvedOptions) (*forecast.HourlySeries, error) {
	f.calls++
	return f.series, f.err
}

type fakeArchive struct {
	daily *forecast.DailySeries
	err   error
	calls int
}

func (f *fakeArchive) FetchDaily(_ context.Context, _ int, _ forecast.ResolvedOptions) (*forecast.DailySeries, error) {
	f.calls++
	return f.daily, f.err
}

type fakeText struct {
	text          string
	err           error
	calls         int
	lastPrompt    string
	lastSystem    string
	lastGrounding []byte
}

func (f *fakeText) GenerateText(_ context.Context, prompt, system string, grounding []byte) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastSystem = system
	f.lastGrounding = grounding
	return f.text, f.err
}

type fakeSpeech struct {
	pcm      []byte
	err      error
	calls    int
	lastText string
}

func (f *fakeSpeech) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.calls++
	f.lastText = text
	return f.pcm, f.err
}

type harness struct {
	service   *forecast.Service
	forecasts *cache.ForecastCache
	hourly    *fakeHourly
	archive   *fakeArchive
	text      *fakeText
	speech    *fakeSpeech
	dir       string
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)

	hourlySeries := &forecast.HourlySeries{}
	for i := 0; i < 72; i++ {
		hourlySeries.Time = append(hourlySeries.Time, "t")
		hourlySeries.Temperature = append(hourlySeries.Temperature, 55)
		hourlySeries.WeatherCode = append(hourlySeries.WeatherCode, 0)
	}

	daily := &forecast.DailySeries{}
	for i := 0; i < 364; i++ {
		daily.Time = append(daily.Time, "d")
		daily.TemperatureMin = append(daily.TemperatureMin, 30)
		daily.TemperatureMax = append(daily.TemperatureMax, 50)
		daily.PrecipitationSum = append(daily.PrecipitationSum, 0)
	}

	dir := t.TempDir()
	h := &harness{
		forecasts: cache.NewForecastCache(dir),
		hourly:    &fakeHourly{series: hourlySeries},
		archive:   &fakeArchive{daily: daily},
		text:      &fakeText{text: "Expect a mild afternoon."},
		speech:    &fakeSpeech{pcm: []byte{1, 0, 2, 0}},
		dir:       dir,
		now:       now,
	}
	h.service = forecast.NewService(
		h.forecasts,
		cache.NewHistoryCache(dir),
		h.hourly,
		h.archive,
		h.text,
		h.speech,
		func(path string, pcm []byte) error { return os.WriteFile(path, pcm, 0o644) },
		dir,
		func() time.Time { return now },
	)
	return h
}

func TestGetForecastDataGeneratesAndCaches(t *testing.T) {
	h := newHarness(t)

	result, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "tomorrow"})
	require.NoError(t, err)

	assert.Equal(t, "Expect a mild afternoon.", result.Forecast)
	assert.Equal(t, "2026-03-12", result.ForecastDate)
	assert.Equal(t, "2026-03-12_38.89_-77.04.wav", result.AudioFile)
	require.NotNil(t, result.WeatherData)
	assert.Len(t, result.WeatherData.ForecastDay, 24)
	assert.Equal(t, "March 11, 2026 12:00", result.WeatherData.CurrentDateTime)
	require.NotNil(t, result.WeatherData.HistoricalAverages)
	assert.Equal(t, 30, result.WeatherData.HistoricalAverages.AverageLow)
	assert.Equal(t, 50, result.WeatherData.HistoricalAverages.AverageHigh)

	assert.Equal(t, 1, h.archive.calls)
	assert.Equal(t, 1, h.hourly.calls)
	assert.Equal(t, 1, h.text.calls)
	assert.Equal(t, 1, h.speech.calls)

	// The grounding payload is the serialized weather context.
	var grounded forecast.WeatherContext
	require.NoError(t, json.Unmarshal(h.text.lastGrounding, &grounded))
	assert.Len(t, grounded.PreviousDay, 24)
	assert.NotEmpty(t, h.text.lastSystem)

	// The synthesized text carries the voice-style instruction prefix.
	assert.Contains(t, h.speech.lastText, "Expect a mild afternoon.")
	assert.Greater(t, len(h.speech.lastText), len("Expect a mild afternoon."))

	// The audio landed on disk and the cache entry expires TTL from now.
	audio, err := os.ReadFile(filepath.Join(h.dir, result.AudioFile))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 2, 0}, audio)

	entry, ok, err := h.forecasts.Lookup("2026-03-12", "38.89_-77.04", h.now.Unix())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, h.now.Unix()+7200, entry.Expiration)
	assert.Equal(t, result.Forecast, entry.Text)
	assert.Equal(t, result.AudioFile, entry.AudioFile)
}

func TestGetForecastDataCacheHitShortCircuits(t *testing.T) {
	h := newHarness(t)

	entry := forecast.CachedForecast{
		Expiration: h.now.Unix() + 100,
		Text:       "Cached text.",
		AudioFile:  "2026-03-11_38.89_-77.04.wav",
	}
	require.NoError(t, h.forecasts.Put("2026-03-11", "38.89_-77.04", entry))

	result, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	require.NoError(t, err)

	assert.Equal(t, "Cached text.", result.Forecast)
	assert.Equal(t, entry.AudioFile, result.AudioFile)
	assert.Nil(t, result.WeatherData)

	assert.Zero(t, h.archive.calls)
	assert.Zero(t, h.hourly.calls)
	assert.Zero(t, h.text.calls)
	assert.Zero(t, h.speech.calls)
}

func TestGetForecastDataExpiredEntryRegenerates(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.forecasts.Put("2026-03-11", "38.89_-77.04", forecast.CachedForecast{
		Expiration: h.now.Unix() - 1,
		Text:       "Stale.",
	}))

	result, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	require.NoError(t, err)
	assert.Equal(t, "Expect a mild afternoon.", result.Forecast)
	assert.Equal(t, 1, h.text.calls)
}

func TestGetForecastDataInvalidInputMakesNoCalls(t *testing.T) {
	h := newHarness(t)

	// More than six days past "now".
	_, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "2026-02-15"})
	var invalid *forecast.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "2026-02-15")

	_, err = h.service.GetForecastData(context.Background(), map[string]string{"lat": "95"})
	require.ErrorAs(t, err, &invalid)

	assert.Zero(t, h.archive.calls)
	assert.Zero(t, h.hourly.calls)
	assert.Zero(t, h.text.calls)
}

func TestGetForecastDataHistoricalCacheReused(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	require.NoError(t, err)

	// A different forecast date in the same week misses the forecast cache
	// but reuses the cached historical year.
	_, err = h.service.GetForecastData(context.Background(), map[string]string{"date": "tomorrow"})
	require.NoError(t, err)

	assert.Equal(t, 1, h.archive.calls)
	assert.Equal(t, 2, h.hourly.calls)
}

func TestGetForecastDataUpstreamFailureCachesNothing(t *testing.T) {
	h := newHarness(t)
	h.text.err = &forecast.ExternalServiceError{Service: "generative AI", StatusCode: 500, Body: "boom"}

	_, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	var external *forecast.ExternalServiceError
	require.ErrorAs(t, err, &external)

	_, ok, lookupErr := h.forecasts.Lookup("2026-03-11", "38.89_-77.04", h.now.Unix())
	require.NoError(t, lookupErr)
	assert.False(t, ok, "failed generation must not write a cache entry")

	// A retry after the failure attempts generation again.
	h.text.err = nil
	_, err = h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	require.NoError(t, err)
	assert.Equal(t, 2, h.text.calls)
}

func TestGetForecastDataArchiveFailurePropagates(t *testing.T) {
	h := newHarness(t)
	h.archive.err = &forecast.ExternalServiceError{Service: "historical weather", StatusCode: 429, Body: "rate limited"}

	_, err := h.service.GetForecastData(context.Background(), map[string]string{"date": "today"})
	var external *forecast.ExternalServiceError
	require.ErrorAs(t, err, &external)
	assert.Equal(t, 429, external.StatusCode)
	assert.Zero(t, h.text.calls)
	assert.Zero(t, h.speech.calls)
}
