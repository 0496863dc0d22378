package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Nadercr7/Shamel/internal/config"
)

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

// ElevenLabsClient synthesizes speech with the ElevenLabs text-to-speech API
type ElevenLabsClient struct {
	APIKey       string
	BaseURL      string
	Model        string
	EnglishVoice string
	ArabicVoice  string
	Settings     config.VoiceSettings
	HTTPClient   *http.Client
}

// NewElevenLabsClient creates a client from the speech settings in cfg.
// Requests carry no timeout; callers cancel them through the context.
func NewElevenLabsClient(cfg *config.Config) *ElevenLabsClient {
	return &ElevenLabsClient{
		APIKey:       cfg.ElevenLabsAPIKey,
		BaseURL:      strings.TrimRight(cfg.ElevenLabsBaseURL, "/"),
		Model:        cfg.ElevenLabsModel,
		EnglishVoice: cfg.EnglishVoiceID,
		ArabicVoice:  cfg.ArabicVoiceID,
		Settings:     cfg.Voice,
		HTTPClient:   &http.Client{},
	}
}

// Configured reports whether an API key is present
func (c *ElevenLabsClient) Configured() bool {
	return c.APIKey != ""
}

// VoiceFor picks the voice for a speech language tag
func (c *ElevenLabsClient) VoiceFor(tag string) string {
	if strings.HasPrefix(strings.ToLower(tag), "ar") {
		return c.ArabicVoice
	}
	return c.EnglishVoice
}

// Synthesize converts text to MP3 audio in the voice matching tag
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, tag string) ([]byte, error) {
	if c.APIKey == "" {
		return nil, ErrNoCredential
	}

	requestBody, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: c.Model,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       c.Settings.Stability,
			SimilarityBoost: c.Settings.SimilarityBoost,
			Style:           c.Settings.Style,
			UseSpeakerBoost: c.Settings.UseSpeakerBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.BaseURL, c.VoiceFor(tag))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Provider: "ElevenLabs", Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "audio/") {
		return nil, ErrNotAudio
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	return audio, nil
}
