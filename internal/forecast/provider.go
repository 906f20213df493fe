package forecast

import "context"

// HourlySeries is the hourly time series returned by the weather forecast
// provider for the three-day window around the forecast date. Only the fields
// the forecast context uses are decoded; everything else is dropped.
type HourlySeries struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	Precipitation            []float64 `json:"precipitation"`
	UVIndex                  []float64 `json:"uv_index"`
	CloudCover               []float64 `json:"cloud_cover"`
	RelativeHumidity         []float64 `json:"relative_humidity_2m"`
	WindSpeed                []float64 `json:"wind_speed_10m"`
	WindGusts                []float64 `json:"wind_gusts_10m"`
	WindDirection            []float64 `json:"wind_direction_10m"`
	WeatherCode              []int     `json:"weather_code"`
}

// DailySeries is the daily time series returned by the historical archive
// provider for a full calendar year.
type DailySeries struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// HourlyFetcher abstracts the hourly weather forecast provider.
type HourlyFetcher interface {
	FetchHourly(ctx context.Context, opts ResolvedOptions) (*HourlySeries, error)
}

// ArchiveFetcher abstracts the historical weather archive provider.
type ArchiveFetcher interface {
	FetchDaily(ctx context.Context, year int, opts ResolvedOptions) (*DailySeries, error)
}

// TextGenerator abstracts the generative text model.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, system string, grounding []byte) (string, error)
}

// SpeechSynthesizer abstracts the speech synthesis model. It returns raw
// single-channel 16-bit PCM samples at 24 kHz.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// CachedForecast is one generated forecast as persisted in the forecast cache.
type CachedForecast struct {
	Expiration int64  `json:"exp"`
	Text       string `json:"txt"`
	AudioFile  string `json:"wav"`
}

// ForecastStore is the contract the forecast cache must satisfy. A lookup is a
// hit only while now (epoch seconds) is at or before the entry's expiration.
type ForecastStore interface {
	Lookup(date, coord string, now int64) (CachedForecast, bool, error)
	Put(date, coord string, entry CachedForecast) error
}

// HistoryStore is the contract the historical cache must satisfy. Entries are
// ordered [low, high] weekly average pairs and never expire.
type HistoryStore interface {
	Lookup(year, coord string) ([][2]int, bool, error)
	Put(year, coord string, weeks [][2]int) error
}
