package forecast

import (
	"math"
	"time"
)

const daysPerWeek = 7

// WeeklyAverages partitions a year of daily lows/highs into consecutive
// seven-day chunks and returns one rounded [low, high] average pair per full
// chunk. A trailing partial chunk (the 1-2 leftover days of a calendar year)
// is discarded rather than padded.
func WeeklyAverages(lows, highs []float64) [][2]int {
	n := len(lows)
	if len(highs) < n {
		n = len(highs)
	}

	weeks := make([][2]int, 0, n/daysPerWeek)
	var lowTotal, highTotal float64
	dayCount := 0

	for i := 0; i < n; i++ {
		lowTotal += lows[i]
		highTotal += highs[i]
		dayCount++
		if dayCount == daysPerWeek {
			weeks = append(weeks, [2]int{
				int(math.Round(lowTotal / daysPerWeek)),
				int(math.Round(highTotal / daysPerWeek)),
			})
			dayCount = 0
			lowTotal = 0
			highTotal = 0
		}
	}

	return weeks
}

// weekOfYear computes the Monday-based week-of-year number: all days before
// the year's first Monday are week 0. This matches the original cache layout,
// so existing historical cache files keep indexing the same entries.
func weekOfYear(t time.Time) int {
	mondayBased := (int(t.Weekday()) + 6) % 7
	return (t.YearDay() + 6 - mondayBased) / daysPerWeek
}

// historyWeekIndex maps the forecast date to its zero-based slot in the
// cached weekly sequence. Week 0 (days before the first Monday in January)
// and week 53 fall outside the stored range; they wrap around, which is a
// documented approximation rather than calendar-exact alignment.
func historyWeekIndex(forecastDate time.Time, weeks int) int {
	if weeks == 0 {
		return 0
	}
	idx := (weekOfYear(forecastDate) - 1) % weeks
	if idx < 0 {
		idx += weeks
	}
	return idx
}
