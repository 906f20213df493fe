// Package genai calls the Gemini generateContent REST API for forecast text
// generation and speech synthesis.
package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"forecaster/internal/forecast"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 2 * time.Minute

	serviceName = "generative AI"
)

// Config configures the Gemini client.
type Config struct {
	APIKey      string
	TextModel   string
	SpeechModel string
	Voice       string

	// BaseURL overrides the public endpoint when non-empty (used by tests).
	BaseURL string
	Timeout time.Duration
}

// Client is a Gemini API client covering the two calls the forecaster makes:
// grounded text generation and prebuilt-voice speech synthesis.
type Client struct {
	http    *resty.Client
	circuit *gobreaker.CircuitBreaker
	cfg     Config
}

// New creates a Gemini client. The API key is required; models and voice fall
// back to the values the appliance ships with.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("genai: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-3-flash-preview"
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = "gemini-2.5-flash-preview-tts"
	}
	if cfg.Voice == "" {
		cfg.Voice = "Erinome"
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("x-goog-api-key", cfg.APIKey)

	return &Client{
		http: client,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "genai",
			MaxRequests: 2,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		cfg: cfg,
	}, nil
}

// Wire types for the generateContent endpoint.

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText runs the text model with the prompt as instruction, the
// serialized weather context as inline JSON grounding data, and the fixed
// system instruction.
func (c *Client) GenerateText(ctx context.Context, prompt, system string, grounding []byte) (string, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "application/json",
					Data:     base64.StdEncoding.EncodeToString(grounding),
				}},
			},
		}},
		SystemInstruction: &content{Parts: []part{{Text: system}}},
	}

	resp, err := c.generate(ctx, c.cfg.TextModel, req)
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", &forecast.ExternalServiceError{Service: serviceName, Err: errors.New("no text in model response")}
}

// Synthesize runs the speech model on the text (with the voice-style
// instruction already prefixed by the caller) and returns the raw PCM samples.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.cfg.Voice},
				},
			},
		},
	}

	resp, err := c.generate(ctx, c.cfg.SpeechModel, req)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				pcm, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, &forecast.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("decoding audio: %w", err)}
				}
				return pcm, nil
			}
		}
	}
	return nil, &forecast.ExternalServiceError{Service: serviceName, Err: errors.New("no audio in model response")}
}

func (c *Client) generate(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	var out generateResponse

	_, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
		if err != nil {
			return nil, &forecast.ExternalServiceError{Service: serviceName, Err: err}
		}
		if !resp.IsSuccess() {
			return nil, &forecast.ExternalServiceError{
				Service:    serviceName,
				StatusCode: resp.StatusCode(),
				Body:       resp.String(),
			}
		}
		return nil, nil
	})
	if err != nil {
		var svcErr *forecast.ExternalServiceError
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, &forecast.ExternalServiceError{Service: serviceName, Err: err}
	}

	return &out, nil
}
