package forecast

// HourlyRecord is one hour of forecast data with human-readable field names,
// as handed to the generative model. Fields not in the mapping are dropped.
type HourlyRecord struct {
	Time                     string  `json:"time"`
	ActualTemperature        float64 `json:"actual temperature"`
	FeelsLikeTemperature     float64 `json:"feels like temperature"`
	PrecipitationProbability float64 `json:"probability of precipitation"`
	PrecipitationAmount      float64 `json:"precipitation amount"`
	UVIndex                  float64 `json:"UV index"`
	CloudCoverPercent        float64 `json:"cloud cover percent"`
	RelativeHumidityPercent  float64 `json:"relative humidity percent"`
	WindSpeed                float64 `json:"wind speed"`
	WindGustSpeed            float64 `json:"wind gust speed"`
	WindDirectionDegrees     float64 `json:"wind direction degrees"`
	WeatherDescription       string  `json:"weather description"`

	// PrecipitationType is "rain" or "snow" when derivable, otherwise the
	// field is absent from the serialized record entirely.
	PrecipitationType string `json:"precipitation type,omitempty"`
}

// HistoricalAverages holds the prior-year weekly average temperatures for the
// week containing the forecast date.
type HistoricalAverages struct {
	AverageLow  int `json:"average low temperature"`
	AverageHigh int `json:"average high temperature"`
}

// WeatherContext is the full grounding payload given to the generative model:
// three day-buckets of hourly records around the forecast date, the historical
// averages, and the resolution-time timestamp.
type WeatherContext struct {
	PreviousDay        []HourlyRecord      `json:"previous day"`
	ForecastDay        []HourlyRecord      `json:"forecast day"`
	FollowingDay       []HourlyRecord      `json:"following day"`
	CurrentDateTime    string              `json:"current date and time,omitempty"`
	HistoricalAverages *HistoricalAverages `json:"previous year weekly averages,omitempty"`
}

// Result is what GetForecastData returns to the caller. WeatherData is nil
// when the forecast was served from cache.
type Result struct {
	Forecast     string          `json:"forecast"`
	AudioFile    string          `json:"audioFile"`
	ForecastDate string          `json:"forecastDate"`
	WeatherData  *WeatherContext `json:"weatherData"`
	Options      Options         `json:"options"`
}
