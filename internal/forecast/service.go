// Package forecast implements the forecast-acquisition core: option
// resolution, weather and historical data retrieval, generative forecast text
// and speech synthesis, and caching of the results.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"
)

// ForecastTTL is how long a generated forecast stays servable from cache.
const ForecastTTL = 2 * time.Hour

const contextTimeFormat = "January 02, 2006 15:04"

// AudioWriter persists raw PCM speech samples as a playable audio file.
type AudioWriter func(path string, pcm []byte) error

// Service is the public entry point of the forecaster core. All collaborators
// are injected so the core can be constructed and tested without hardware,
// network, or API keys present.
type Service struct {
	forecasts ForecastStore
	history   HistoryStore
	weather   HourlyFetcher
	archive   ArchiveFetcher
	text      TextGenerator
	speech    SpeechSynthesizer

	writeAudio AudioWriter
	cacheDir   string
	now        func() time.Time
}

// NewService wires the forecaster core. now may be nil, in which case
// time.Now is used.
func NewService(
	forecasts ForecastStore,
	history HistoryStore,
	weather HourlyFetcher,
	archive ArchiveFetcher,
	text TextGenerator,
	speech SpeechSynthesizer,
	writeAudio AudioWriter,
	cacheDir string,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		forecasts:  forecasts,
		history:    history,
		weather:    weather,
		archive:    archive,
		text:       text,
		speech:     speech,
		writeAudio: writeAudio,
		cacheDir:   cacheDir,
		now:        now,
	}
}

// GetForecastData resolves the option overrides, serves the forecast from
// cache when a fresh entry exists, and otherwise fetches weather data,
// generates forecast text and speech audio, caches both, and returns them.
//
// Errors are either *InvalidInputError (bad caller input, no external call
// was made for the offending value) or *ExternalServiceError (an upstream
// call failed; nothing was cached).
func (s *Service) GetForecastData(ctx context.Context, overrides map[string]string) (*Result, error) {
	opts, err := ResolveOptions(overrides, s.now())
	if err != nil {
		return nil, err
	}

	if cached, ok, err := s.forecasts.Lookup(opts.DateKey(), opts.CoordinateKey(), s.now().Unix()); err != nil {
		return nil, err
	} else if ok {
		slog.Info("using cached forecast",
			"lat", opts.Lat, "lng", opts.Lng, "date", opts.DateKey())
		return &Result{
			Forecast:     cached.Text,
			AudioFile:    cached.AudioFile,
			ForecastDate: opts.DateKey(),
			Options:      opts.Options,
		}, nil
	}

	averages, err := s.historicalAverages(ctx, opts)
	if err != nil {
		return nil, err
	}

	series, err := s.weather.FetchHourly(ctx, opts)
	if err != nil {
		return nil, err
	}

	wctx := BucketHourly(series)
	wctx.CurrentDateTime = opts.Now.Format(contextTimeFormat)
	wctx.HistoricalAverages = averages

	text, audioFile, err := s.generate(ctx, opts, wctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Forecast:     text,
		AudioFile:    audioFile,
		ForecastDate: opts.DateKey(),
		WeatherData:  wctx,
		Options:      opts.Options,
	}, nil
}

// AudioPath resolves a cached audio file name to its on-disk location.
func (s *Service) AudioPath(audioFile string) string {
	return filepath.Join(s.cacheDir, audioFile)
}

// historicalAverages returns the prior-year weekly average temperatures for
// the forecast date's week, fetching and caching the full year on a miss.
func (s *Service) historicalAverages(ctx context.Context, opts ResolvedOptions) (*HistoricalAverages, error) {
	lastYear := opts.ForecastDate.Year() - 1
	yearKey := strconv.Itoa(lastYear)
	coord := opts.CoordinateKey()

	weeks, ok, err := s.history.Lookup(yearKey, coord)
	if err != nil {
		return nil, err
	}
	if ok {
		slog.Info("using cached historical data", "year", yearKey, "coord", coord)
		return averagesForWeek(weeks, opts.ForecastDate)
	}

	slog.Info("retrieving historical weather data", "year", yearKey, "coord", coord)
	daily, err := s.archive.FetchDaily(ctx, lastYear, opts)
	if err != nil {
		return nil, err
	}

	weeks = WeeklyAverages(daily.TemperatureMin, daily.TemperatureMax)
	if err := s.history.Put(yearKey, coord, weeks); err != nil {
		return nil, err
	}

	return averagesForWeek(weeks, opts.ForecastDate)
}

func averagesForWeek(weeks [][2]int, forecastDate time.Time) (*HistoricalAverages, error) {
	if len(weeks) == 0 {
		return nil, &ExternalServiceError{
			Service: "historical weather",
			Err:     fmt.Errorf("no weekly averages available for %d", forecastDate.Year()-1),
		}
	}
	week := weeks[historyWeekIndex(forecastDate, len(weeks))]
	return &HistoricalAverages{AverageLow: week[0], AverageHigh: week[1]}, nil
}

// generate runs the text model on the weather context, synthesizes speech for
// the result, persists the audio, and writes the forecast cache entry. Any
// model failure propagates before the cache is touched.
func (s *Service) generate(ctx context.Context, opts ResolvedOptions, wctx *WeatherContext) (string, string, error) {
	prompt := buildPrompt(opts)
	slog.Info("generating weather forecast", "prompt", prompt)

	grounding, err := json.Marshal(wctx)
	if err != nil {
		return "", "", fmt.Errorf("encoding weather context: %w", err)
	}

	text, err := s.text.GenerateText(ctx, prompt, forecastInstruction, grounding)
	if err != nil {
		return "", "", err
	}

	pcm, err := s.speech.Synthesize(ctx, voiceInstruction+"\n"+text)
	if err != nil {
		return "", "", err
	}

	audioFile := fmt.Sprintf("%s_%s.wav", opts.DateKey(), opts.CoordinateKey())
	if err := s.writeAudio(filepath.Join(s.cacheDir, audioFile), pcm); err != nil {
		return "", "", err
	}

	slog.Info("caching forecast", "date", opts.DateKey(), "coord", opts.CoordinateKey())
	entry := CachedForecast{
		Expiration: s.now().Unix() + int64(ForecastTTL.Seconds()),
		Text:       text,
		AudioFile:  audioFile,
	}
	if err := s.forecasts.Put(opts.DateKey(), opts.CoordinateKey(), entry); err != nil {
		return "", "", err
	}

	return text, audioFile, nil
}
