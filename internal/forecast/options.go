package forecast

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Options holds the per-request settings after defaults have been merged.
type Options struct {
	Date              string  `json:"date"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
	Timezone          string  `json:"timezone"`
	HumidityBreak     float64 `json:"humidity_break"`
	WindBreak         float64 `json:"wind_break"`
	HighTempBreak     float64 `json:"high_temp_break"`
	LowTempBreak      float64 `json:"low_temp_break"`
	WindSpeedUnit     string  `json:"wind_speed_unit"`
	TemperatureUnit   string  `json:"temperature_unit"`
	PrecipitationUnit string  `json:"precipitation_unit"`
}

// DefaultOptions returns the built-in option values. Every recognized key has
// a default so callers may omit any subset of overrides.
func DefaultOptions() Options {
	return Options{
		Date:              "today",
		Lat:               38.89,
		Lng:               -77.04,
		Timezone:          "America/New_York",
		HumidityBreak:     0.80,
		WindBreak:         5,
		HighTempBreak:     90,
		LowTempBreak:      30,
		WindSpeedUnit:     "mph",
		TemperatureUnit:   "fahrenheit",
		PrecipitationUnit: "inch",
	}
}

// ResolvedOptions is an Options plus the concrete forecast date and the
// timestamp the resolution was performed at, both in the configured zone.
type ResolvedOptions struct {
	Options
	ForecastDate time.Time
	Now          time.Time
	Location     *time.Location
}

// DateKey returns the calendar-day cache key for the forecast date.
func (r ResolvedOptions) DateKey() string {
	return r.ForecastDate.Format("2006-01-02")
}

// CoordinateKey returns the lat/lng cache sub-key, e.g. "38.89_-77.04".
func (r ResolvedOptions) CoordinateKey() string {
	return formatCoord(r.Lat) + "_" + formatCoord(r.Lng)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	validate = validator.New()

	// Strict calendar-date shape; month/day plausibility is left to the parser.
	exactDateRe = regexp.MustCompile(`^[0-9]{4}-[01][0-9]-[0-3][0-9]$`)

	weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// coordBounds exists so coordinate validation shares the validator the HTTP
// layer already depends on.
type coordBounds struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

// ResolveOptions merges overrides onto the defaults and resolves the date
// expression against now.
//
// Keys are matched case-insensitively and unknown keys are dropped. Numeric
// overrides that fail to parse are silently discarded so the default applies;
// string overrides are lower-cased. Coordinates outside their valid ranges and
// unresolvable date expressions fail with *InvalidInputError.
func ResolveOptions(overrides map[string]string, now time.Time) (ResolvedOptions, error) {
	opts := DefaultOptions()

	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch strings.ToLower(key) {
		case "date":
			opts.Date = strings.ToLower(value)
		case "lat":
			setFloat(&opts.Lat, value)
		case "lng":
			setFloat(&opts.Lng, value)
		case "timezone":
			opts.Timezone = strings.ToLower(value)
		case "humidity_break":
			setFloat(&opts.HumidityBreak, value)
		case "wind_break":
			setFloat(&opts.WindBreak, value)
		case "high_temp_break":
			setFloat(&opts.HighTempBreak, value)
		case "low_temp_break":
			setFloat(&opts.LowTempBreak, value)
		case "wind_speed_unit":
			opts.WindSpeedUnit = strings.ToLower(value)
		case "temperature_unit":
			opts.TemperatureUnit = strings.ToLower(value)
		case "precipitation_unit":
			opts.PrecipitationUnit = strings.ToLower(value)
		}
	}

	if err := validate.Struct(coordBounds{Lat: opts.Lat, Lng: opts.Lng}); err != nil {
		return ResolvedOptions{}, invalidInputf("invalid lat, lng inputs: %v, %v", opts.Lat, opts.Lng)
	}

	loc, err := loadLocation(opts.Timezone)
	if err != nil {
		return ResolvedOptions{}, invalidInputf("invalid timezone input: %s", opts.Timezone)
	}

	localNow := now.In(loc)
	forecastDate, err := resolveDate(opts.Date, localNow, loc)
	if err != nil {
		return ResolvedOptions{}, err
	}

	return ResolvedOptions{
		Options:      opts,
		ForecastDate: forecastDate,
		Now:          localNow,
		Location:     loc,
	}, nil
}

func setFloat(dst *float64, value string) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		*dst = v
	}
}

// loadLocation accepts zone names case-insensitively since string overrides
// are lower-cased before they get here.
func loadLocation(name string) (*time.Location, error) {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}
	if len(name) <= 3 {
		// short abbreviations like "utc" or "est"
		return time.LoadLocation(strings.ToUpper(name))
	}
	return time.LoadLocation(canonicalZoneName(name))
}

func canonicalZoneName(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		segs := strings.Split(p, "_")
		for j, s := range segs {
			if s == "" {
				continue
			}
			segs[j] = strings.ToUpper(s[:1]) + s[1:]
		}
		parts[i] = strings.Join(segs, "_")
	}
	return strings.Join(parts, "/")
}

func resolveDate(expr string, now time.Time, loc *time.Location) (time.Time, error) {
	if exactDateRe.MatchString(expr) {
		parsed, err := time.ParseInLocation("2006-01-02", expr, loc)
		if err != nil {
			return time.Time{}, invalidInputf("invalid YYYY-MM-DD date input: %s", expr)
		}
		diff := daysBetween(now, parsed)
		if diff < 0 || diff > 6 {
			return time.Time{}, invalidInputf("date input is out of range: %s", expr)
		}
		return parsed, nil
	}

	for i, day := range weekdays {
		if expr == day {
			daysToAdd := (i - int(now.Weekday()) + 7) % 7
			return now.AddDate(0, 0, daysToAdd), nil
		}
	}

	switch expr {
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "today":
		return now, nil
	}

	return time.Time{}, invalidInputf("invalid date input for forecast: %s", expr)
}

// daysBetween counts whole calendar days from now's date to target's date,
// ignoring time of day.
func daysBetween(now, target time.Time) int {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDate := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDate.Sub(nowDate).Hours() / 24)
}
