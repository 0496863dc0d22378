// Package summarizer turns a PDF document into a short summary for students.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nadercr7/Shamel/internal/models"
)

var (
	ErrNoDocument = errors.New("no document selected")
	ErrNotPDF     = errors.New("document is not a PDF")
	ErrNoText     = errors.New("no text could be extracted from the document")
)

// Extractor reads the text of a document
type Extractor interface {
	Extract(path string) (string, error)
}

// Summarizer condenses text in the given language
type Summarizer interface {
	Summarize(ctx context.Context, text string, lang models.Language) (string, error)
}

// Service runs the extract-then-summarize flow
type Service struct {
	extractor  Extractor
	summarizer Summarizer
	logger     *slog.Logger
}

// NewService creates a service. A nil summarizer makes every request fail after extraction.
func NewService(extractor Extractor, summarizer Summarizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{extractor: extractor, summarizer: summarizer, logger: logger}
}

// Summarize extracts the text of the PDF at path and summarizes it in lang
func (s *Service) Summarize(ctx context.Context, path string, lang models.Language) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrNoDocument
	}

	text, err := s.extractor.Extract(path)
	if err != nil {
		s.logger.Error("failed to extract document text", "path", path, "error", err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	if s.summarizer == nil {
		return "", fmt.Errorf("summarization service is not configured")
	}

	summary, err := s.summarizer.Summarize(ctx, text, lang)
	if err != nil {
		s.logger.Error("summarization failed", "path", path, "error", err)
		return "", err
	}

	s.logger.Info("document summarized", "path", path, "chars", len(text))
	return summary, nil
}
