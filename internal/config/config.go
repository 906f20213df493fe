// Package config loads the appliance configuration from the environment.
package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds everything the process needs that is not a per-request
// option: API credentials, model selection, the cache location, and the HTTP
// trigger surface settings.
type AppConfig struct {
	// GenAIKey authenticates the generative AI calls.
	GenAIKey string `envconfig:"GEN_AI_KEY"`

	// Model and voice selection for the two generative calls.
	TextModel   string `envconfig:"GEN_AI_TEXT_MODEL" default:"gemini-3-flash-preview"`
	SpeechModel string `envconfig:"GEN_AI_SPEECH_MODEL" default:"gemini-2.5-flash-preview-tts"`
	Voice       string `envconfig:"GEN_AI_VOICE" default:"Erinome"`

	// CacheDir holds the two cache files and the generated WAV files.
	CacheDir string `envconfig:"CACHE_DIR" default:".cache"`

	Port string `envconfig:"PORT" default:"8080"`

	// Outbound call timeouts.
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	GenAITimeout time.Duration `envconfig:"GEN_AI_TIMEOUT" default:"2m"`

	// Cache warming keeps today's forecast fresh so a button press is served
	// instantly. Off unless enabled.
	WarmEnabled  bool          `envconfig:"WARM_ENABLED" default:"false"`
	WarmInterval time.Duration `envconfig:"WARM_INTERVAL" default:"1h"`

	// PlayerCommand is the external audio player the announce path shells
	// out to.
	PlayerCommand string `envconfig:"PLAYER_COMMAND" default:"aplay"`
}

// Load reads configuration from the environment, consulting a .env file first
// when one exists.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
