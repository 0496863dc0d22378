package ai

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// TTSClient handles text-to-speech conversion using OpenAI
type TTSClient struct {
	client *openai.Client
	apiKey string
	model  string
	voice  string
}

// NewTTSClient creates a new TTS client. An empty baseURL uses the public endpoint.
func NewTTSClient(apiKey, baseURL, model, voice string) *TTSClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &TTSClient{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  model,
		voice:  voice,
	}
}

// Configured reports whether an API key is present
func (t *TTSClient) Configured() bool {
	return t.apiKey != ""
}

// Synthesize converts text to MP3 audio. OpenAI voices are multilingual, so the
// language tag does not change the voice.
func (t *TTSClient) Synthesize(ctx context.Context, text, _ string) ([]byte, error) {
	if t.apiKey == "" {
		return nil, ErrNoCredential
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(t.model),
		Input:          text,
		Voice:          voiceFromName(t.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	response, err := t.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech: %w", err)
	}
	defer response.Close()

	if ct := response.Header().Get("Content-Type"); ct != "" && !strings.Contains(ct, "audio") {
		return nil, ErrNotAudio
	}

	audio, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	return audio, nil
}

func voiceFromName(name string) openai.SpeechVoice {
	switch name {
	case "echo":
		return openai.VoiceEcho
	case "fable":
		return openai.VoiceFable
	case "onyx":
		return openai.VoiceOnyx
	case "nova":
		return openai.VoiceNova
	case "shimmer":
		return openai.VoiceShimmer
	default:
		return openai.VoiceAlloy
	}
}
