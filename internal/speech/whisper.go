package speech

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Nadercr7/Shamel/internal/audio"
	"github.com/Nadercr7/Shamel/internal/models"
)

// Capture is a microphone that can be drained while it records
type Capture interface {
	StartRecording() error
	StopRecording() error
	Drain() *models.AudioData
}

// Transcriber converts a WAV segment to text
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte, lang models.Language) (string, error)
}

// WhisperOptions configures segmented recognition
type WhisperOptions struct {
	Segment          time.Duration
	SilenceThreshold float64
	Logger           *slog.Logger
}

// NewWhisperFactory returns a RecognizerFactory that records fixed-length segments and
// transcribes each non-silent one. Every transcription is delivered as a final result.
func NewWhisperFactory(capture Capture, transcriber Transcriber, opts WhisperOptions) RecognizerFactory {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return func(tag string, handlers Handlers) (Recognizer, error) {
		if capture == nil || transcriber == nil {
			return nil, fmt.Errorf("no microphone or transcription service")
		}
		return &whisperRecognizer{
			capture:     capture,
			transcriber: transcriber,
			lang:        models.ParseLanguage(tag),
			opts:        opts,
			handlers:    handlers,
		}, nil
	}
}

type whisperRecognizer struct {
	capture     Capture
	transcriber Transcriber
	lang        models.Language
	opts        WhisperOptions
	handlers    Handlers

	mu      sync.Mutex
	cancel  context.CancelFunc
	results []Result
}

func (w *whisperRecognizer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return fmt.Errorf("recognition already started")
	}
	if err := w.capture.StartRecording(); err != nil {
		return fmt.Errorf("failed to start microphone: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.results = nil
	go w.loop(ctx)
	return nil
}

// Stop discards the segment being recorded and reports the end of recognition
func (w *whisperRecognizer) Stop() {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.cancel = nil
	if err := w.capture.StopRecording(); err != nil {
		w.opts.Logger.Warn("failed to stop microphone", "error", err)
	}
	w.mu.Unlock()

	if w.handlers.OnEnd != nil {
		w.handlers.OnEnd()
	}
}

func (w *whisperRecognizer) loop(ctx context.Context) {
	ticker := time.NewTicker(w.opts.Segment)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		segment := w.capture.Drain()
		if len(segment.Data) == 0 || audio.RMS(segment.Data) < w.opts.SilenceThreshold {
			continue
		}

		text, err := w.transcriber.Transcribe(ctx, audio.EncodeWAV(segment), w.lang)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.abort(ctx, err)
			return
		}
		if text == "" {
			continue
		}
		w.deliver(ctx, text)
	}
}

func (w *whisperRecognizer) deliver(ctx context.Context, text string) {
	w.mu.Lock()
	// a Stop that won the race owns the session now
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.results = append(w.results, Result{Alternatives: []string{text}, Final: true})
	ev := ResultEvent{
		Results:     append([]Result(nil), w.results...),
		ResultIndex: len(w.results) - 1,
	}
	w.mu.Unlock()

	if w.handlers.OnResult != nil {
		w.handlers.OnResult(ev)
	}
}

func (w *whisperRecognizer) abort(ctx context.Context, err error) {
	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.cancel = nil
	if stopErr := w.capture.StopRecording(); stopErr != nil {
		w.opts.Logger.Warn("failed to stop microphone", "error", stopErr)
	}
	w.mu.Unlock()

	if w.handlers.OnError != nil {
		w.handlers.OnError(fmt.Errorf("transcription failed: %w", err))
	}
	if w.handlers.OnEnd != nil {
		w.handlers.OnEnd()
	}
}
