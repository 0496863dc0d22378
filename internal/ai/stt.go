package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/sashabaranov/go-openai"
)

// STTClient handles speech-to-text conversion using OpenAI Whisper
type STTClient struct {
	client *openai.Client
	model  string
}

// NewSTTClient creates a new STT client. An empty baseURL uses the public endpoint.
func NewSTTClient(apiKey, baseURL, model string) *STTClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &STTClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Transcribe converts an in-memory WAV segment to text, hinting the spoken language
func (s *STTClient) Transcribe(ctx context.Context, wav []byte, lang models.Language) (string, error) {
	req := openai.AudioRequest{
		Model:    s.model,
		FilePath: "segment.wav",
		Reader:   bytes.NewReader(wav),
		Language: string(lang),
	}

	response, err := s.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription: %w", err)
	}

	return strings.TrimSpace(response.Text), nil
}
