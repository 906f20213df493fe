package forecast

// weatherCode describes one WMO weather interpretation code as reported by
// Open-Meteo, with the broad category the precipitation-type rule keys on.
type weatherCode struct {
	Description string
	Category    string
}

const (
	categoryClear = "clear"
	categoryCloud = "cloud"
	categoryFog   = "fog"
	categoryRain  = "rain"
	categorySnow  = "snow"
	categoryStorm = "storm"
)

// weatherCodes maps WMO codes to human-readable descriptions. Loaded once at
// startup; never mutated.
var weatherCodes = map[int]weatherCode{
	0:  {"clear sky", categoryClear},
	1:  {"mainly clear", categoryClear},
	2:  {"partly cloudy", categoryCloud},
	3:  {"overcast", categoryCloud},
	45: {"fog", categoryFog},
	48: {"depositing rime fog", categoryFog},
	51: {"light drizzle", categoryRain},
	53: {"moderate drizzle", categoryRain},
	55: {"dense drizzle", categoryRain},
	56: {"light freezing drizzle", categoryRain},
	57: {"dense freezing drizzle", categoryRain},
	61: {"slight rain", categoryRain},
	63: {"moderate rain", categoryRain},
	65: {"heavy rain", categoryRain},
	66: {"light freezing rain", categoryRain},
	67: {"heavy freezing rain", categoryRain},
	71: {"slight snow fall", categorySnow},
	73: {"moderate snow fall", categorySnow},
	75: {"heavy snow fall", categorySnow},
	77: {"snow grains", categorySnow},
	80: {"slight rain showers", categoryRain},
	81: {"moderate rain showers", categoryRain},
	82: {"violent rain showers", categoryRain},
	85: {"slight snow showers", categorySnow},
	86: {"heavy snow showers", categorySnow},
	95: {"thunderstorm", categoryStorm},
	96: {"thunderstorm with slight hail", categoryStorm},
	99: {"thunderstorm with heavy hail", categoryStorm},
}

func lookupWeatherCode(code int) weatherCode {
	if wc, ok := weatherCodes[code]; ok {
		return wc
	}
	return weatherCode{Description: "unknown conditions", Category: "unknown"}
}
