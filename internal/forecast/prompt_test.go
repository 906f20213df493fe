package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T, date string, now time.Time) ResolvedOptions {
	t.Helper()
	opts, err := ResolveOptions(map[string]string{"date": date}, now)
	require.NoError(t, err)
	return opts
}

func TestBuildPromptToday(t *testing.T) {
	now := testNow(t) // noon
	prompt := buildPrompt(resolved(t, "today", now))

	assert.Contains(t, prompt, "forecast for today")
	assert.Contains(t, prompt, "current conditions")
	assert.NotContains(t, prompt, "following day")
}

func TestBuildPromptTodayEvening(t *testing.T) {
	evening := testNow(t).Add(7 * time.Hour) // 19:00 local
	prompt := buildPrompt(resolved(t, "today", evening))

	assert.Contains(t, prompt, "very brief summary of the weather for the following day")
}

func TestBuildPromptFutureDay(t *testing.T) {
	prompt := buildPrompt(resolved(t, "friday", testNow(t)))

	assert.Contains(t, prompt, "Friday")
	assert.Contains(t, prompt, "2026-03-13")
	assert.Contains(t, prompt, "date in the future")
	assert.Contains(t, prompt, `"Friday morning"`)
	assert.NotContains(t, prompt, "current conditions as well")
}

func TestEmbeddedInstructionsPresent(t *testing.T) {
	assert.NotEmpty(t, forecastInstruction)
	assert.NotEmpty(t, voiceInstruction)
}
