package forecast

import (
	_ "embed"
	"fmt"
)

// Static model instructions, loaded once at build time.
var (
	//go:embed assets/forecast-instruction.txt
	forecastInstruction string

	//go:embed assets/voice-instruction.txt
	voiceInstruction string
)

// eveningHour is the local hour after which a today-forecast also gets a
// brief look at tomorrow.
const eveningHour = 17

// buildPrompt constructs the date-relative generation prompt.
//
// For the current calendar day the prompt asks for current conditions plus the
// remainder of today, adding a brief next-day summary in the evening. For a
// future day it asks for a full-day forecast tied to that weekday by name,
// explicitly ruling out present-tense phrasing and other days.
func buildPrompt(opts ResolvedOptions) string {
	dateKey := opts.DateKey()

	if dateKey == opts.Now.Format("2006-01-02") {
		prompt := "Generate a weather forecast for today. Include current conditions as well as any significant weather activity for the remainder of today. "
		if opts.Now.Hour() > eveningHour {
			prompt += "Include a very brief summary of the weather for the following day as well."
		}
		return prompt
	}

	weekday := opts.ForecastDate.Format("Monday")
	return fmt.Sprintf(
		"Generate a weather forecast for %[1]s whose date is %[2]s. This is a date in the future. "+
			"Do not include any information about current conditions. "+
			"Do not use terms like \"this morning\" or \"this afternoon\" and instead use \"%[1]s morning\" or \"%[1]s afternoon\". "+
			"Your forecast should cover weather for the entire day on %[2]s, and should not include weather for any other day.",
		weekday, dateKey)
}
