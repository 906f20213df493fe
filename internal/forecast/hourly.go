package forecast

// Precipitation-type heuristic bounds: a precipitation probability above 4%
// counts as precipitation, and below 35 degrees it is called snow. The
// temperature bound assumes fahrenheit units, matching the defaults.
const (
	precipProbabilityFloor = 4
	snowTemperatureCeiling = 35
)

// hoursPerDay drives the bucket boundaries. The provider is assumed to return
// exactly 24 hourly samples per day for the three-day window; a DST-shortened
// or lengthened day shifts every later bucket. Inherited behavior, kept as is.
const hoursPerDay = 24

// BucketHourly splits the raw hourly series into previous/forecast/following
// day buckets by sample position and maps each hour to its labeled record.
func BucketHourly(series *HourlySeries) *WeatherContext {
	wctx := &WeatherContext{
		PreviousDay:  []HourlyRecord{},
		ForecastDay:  []HourlyRecord{},
		FollowingDay: []HourlyRecord{},
	}

	for i := range series.Time {
		rec := hourlyRecordAt(series, i)
		switch {
		case i < hoursPerDay:
			wctx.PreviousDay = append(wctx.PreviousDay, rec)
		case i < 2*hoursPerDay:
			wctx.ForecastDay = append(wctx.ForecastDay, rec)
		default:
			wctx.FollowingDay = append(wctx.FollowingDay, rec)
		}
	}

	return wctx
}

func hourlyRecordAt(series *HourlySeries, i int) HourlyRecord {
	rec := HourlyRecord{
		Time:                     at(series.Time, i),
		ActualTemperature:        atF(series.Temperature, i),
		FeelsLikeTemperature:     atF(series.ApparentTemperature, i),
		PrecipitationProbability: atF(series.PrecipitationProbability, i),
		PrecipitationAmount:      atF(series.Precipitation, i),
		UVIndex:                  atF(series.UVIndex, i),
		CloudCoverPercent:        atF(series.CloudCover, i),
		RelativeHumidityPercent:  atF(series.RelativeHumidity, i),
		WindSpeed:                atF(series.WindSpeed, i),
		WindGustSpeed:            atF(series.WindGusts, i),
		WindDirectionDegrees:     atF(series.WindDirection, i),
	}

	var code int
	if i < len(series.WeatherCode) {
		code = series.WeatherCode[i]
	}
	wc := lookupWeatherCode(code)
	rec.WeatherDescription = wc.Description
	rec.PrecipitationType = derivePrecipitationType(wc, rec.PrecipitationProbability, rec.ActualTemperature)

	return rec
}

// derivePrecipitationType classifies the hour's precipitation. The weather
// code's own category wins; failing that, a probability/temperature heuristic
// applies; failing both, the empty string means the field is omitted.
func derivePrecipitationType(wc weatherCode, probability, temperature float64) string {
	if wc.Category == categoryRain || wc.Category == categorySnow {
		return wc.Category
	}
	if probability > precipProbabilityFloor {
		if temperature < snowTemperatureCeiling {
			return categorySnow
		}
		return categoryRain
	}
	return ""
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func atF(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}
