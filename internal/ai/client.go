package ai

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/Nadercr7/Shamel/internal/models"
	"google.golang.org/genai"
)

// GeminiClient handles communication with the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini API client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Conversation is a remote multi-turn chat that keeps its own history
type Conversation struct {
	chat *genai.Chat
}

// StartChat opens a new conversation primed with the system instruction for lang
func (g *GeminiClient) StartChat(ctx context.Context, lang models.Language) (*Conversation, error) {
	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(lang), genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &Conversation{chat: chat}, nil
}

// SendMessageStream sends text and yields the reply as it is generated
func (c *Conversation) SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range c.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
			if err != nil {
				yield("", fmt.Errorf("failed to stream reply: %w", err))
				return
			}
			chunk := resp.Text()
			if chunk == "" {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Summarize asks the model for a short student-oriented summary of text
func (g *GeminiClient) Summarize(ctx context.Context, text string, lang models.Language) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(SummaryPrompt(text, lang)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to communicate with the AI summarization service: %w", err)
	}
	summary := strings.TrimSpace(resp.Text())
	if summary == "" {
		return "", fmt.Errorf("no content in response")
	}
	return summary, nil
}
