package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Nadercr7/Shamel/internal/ai"
	"github.com/Nadercr7/Shamel/internal/audio"
	"github.com/Nadercr7/Shamel/internal/chat"
	"github.com/Nadercr7/Shamel/internal/config"
	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/Nadercr7/Shamel/internal/prefs"
	"github.com/Nadercr7/Shamel/internal/quiz"
	"github.com/Nadercr7/Shamel/internal/speech"
	"github.com/Nadercr7/Shamel/internal/summarizer"
	tea "github.com/charmbracelet/bubbletea"
)

// App represents the main application
type App struct {
	config  *config.Config
	logger  *slog.Logger
	logFile io.Closer

	prefs       *prefs.Store
	synthesizer speech.Synthesizer
	recorder    *audio.Recorder
	speaker     *speech.OutputSession
	listener    *speech.InputSession
	chat        *chat.Session
	summarizer  *summarizer.Service
	quiz        *quiz.Game

	mu          sync.Mutex
	events      *eventQueue
	unsubscribe func()
}

// NewApp wires the services described by cfg. Missing credentials and audio devices
// are logged and leave the matching feature inert; they never fail construction.
func NewApp(cfg *config.Config) (*App, error) {
	logger, logFile, err := newLogger(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	a := &App{
		config:  cfg,
		logger:  logger,
		logFile: logFile,
		prefs:   prefs.NewStore(cfg.DefaultLanguage, cfg.HighContrast, cfg.FontSize),
	}
	lang := cfg.DefaultLanguage

	// Initialize AI clients
	var gemini *ai.GeminiClient
	if cfg.GeminiAPIKey != "" {
		gemini, err = ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			gemini = nil
		}
	}

	switch cfg.SpeechProvider {
	case config.ProviderOpenAI:
		a.synthesizer = ai.NewTTSClient(cfg.OpenAIAPIKey, "", cfg.OpenAITTSModel, cfg.OpenAITTSVoice)
	default:
		a.synthesizer = ai.NewElevenLabsClient(cfg)
	}

	// Initialize audio components
	var recognizers speech.RecognizerFactory
	if cfg.OpenAIAPIKey != "" {
		recorder, err := audio.NewRecorder(cfg.SampleRate, 1, cfg.BufferSize)
		if err != nil {
			logger.Warn("microphone unavailable", "error", err)
		} else {
			a.recorder = recorder
			recognizers = speech.NewWhisperFactory(
				recorder,
				ai.NewSTTClient(cfg.OpenAIAPIKey, "", cfg.OpenAISTTModel),
				speech.WhisperOptions{
					Segment:          cfg.SegmentDuration,
					SilenceThreshold: cfg.SilenceThreshold,
					Logger:           logger,
				},
			)
		}
	}

	a.speaker = speech.NewOutputSession(a.synthesizer, speech.NewDevicePlayer(audio.NewPlayer()), logger)
	a.listener = speech.NewInputSession(recognizers, lang.SpeechTag(), logger)

	var conversations chat.Factory
	var summaries summarizer.Summarizer
	if gemini != nil {
		conversations = func(ctx context.Context, lang models.Language) (chat.Conversation, error) {
			c, err := gemini.StartChat(ctx, lang)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
		summaries = gemini
	}
	a.chat = chat.New(conversations, a.speaker, lang, logger)
	a.summarizer = summarizer.NewService(summarizer.PDFExtractor{}, summaries, logger)
	a.quiz = quiz.NewGame(quiz.Questions(lang))

	return a, nil
}

func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo})), f, nil
}

// Run starts the terminal UI on the given view and blocks until it exits
func (a *App) Run(start View) error {
	model := NewModel(a, start)
	program := tea.NewProgram(model, tea.WithAltScreen())

	events := newEventQueue()
	go events.run(program.Send)

	a.mu.Lock()
	a.events = events
	a.mu.Unlock()

	a.bindEvents()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// bindEvents forwards session changes and preference updates to the event loop
func (a *App) bindEvents() {
	a.chat.OnChange(func() { a.send(chatChangedMsg{}) })
	a.speaker.OnChange(func(bool) { a.send(speakingChangedMsg{}) })
	a.speaker.OnError(func(err error) { a.send(speechErrorMsg{err: err}) })
	a.listener.OnChange(func() { a.send(listeningChangedMsg{}) })
	a.listener.OnTranscript(func(text string) { a.send(transcriptMsg{text: text}) })

	current := a.prefs.Language()
	updates, unsubscribe := a.prefs.Subscribe()
	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()

	go func() {
		// a change made before the subscription existed queued no snapshot
		if snap := a.prefs.Get(); snap.Language != current {
			current = snap.Language
			a.applyLanguage(current)
			a.send(prefsChangedMsg{snap: snap})
		}
		for snap := range updates {
			if snap.Language != current {
				current = snap.Language
				a.applyLanguage(current)
			}
			a.send(prefsChangedMsg{snap: snap})
		}
	}()
}

// applyLanguage rebuilds every language-bound session
func (a *App) applyLanguage(lang models.Language) {
	a.logger.Info("language changed", "language", string(lang))
	a.speaker.Cancel()
	a.listener.SetLanguage(lang.SpeechTag())
	a.chat.SetLanguage(lang)
}

// send queues msg for the event loop. It never blocks, so callers may run on the event
// loop itself, and messages arrive in the order they were sent.
func (a *App) send(msg tea.Msg) {
	a.mu.Lock()
	events := a.events
	a.mu.Unlock()
	if events == nil {
		return
	}
	events.push(msg)
}

// Summarize extracts and summarizes the PDF at path in the active language
func (a *App) Summarize(ctx context.Context, path string) (string, error) {
	return a.summarizer.Summarize(ctx, path, a.prefs.Language())
}

// SpeakAndWait reads text aloud and blocks until playback ends or ctx is done
func (a *App) SpeakAndWait(ctx context.Context, text string) error {
	// failures are reported before the speaking=false transition
	done := make(chan error, 2)
	signal := func(err error) {
		select {
		case done <- err:
		default:
		}
	}
	a.speaker.OnError(signal)
	a.speaker.OnChange(func(speaking bool) {
		if !speaking {
			signal(nil)
		}
	})
	defer a.speaker.OnChange(nil)
	defer a.speaker.OnError(nil)

	a.speaker.Speak(text, a.prefs.Language().SpeechTag())
	if !a.speaker.Speaking() {
		select {
		case err := <-done:
			return err
		default:
			return nil
		}
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		a.speaker.Cancel()
		return ctx.Err()
	}
}

// SaveSpeech synthesizes text and stores the clip under the audio temp directory
func (a *App) SaveSpeech(ctx context.Context, text string) (string, error) {
	if a.synthesizer == nil || !a.synthesizer.Configured() {
		return "", speech.ErrNotConfigured
	}
	data, err := a.synthesizer.Synthesize(ctx, text, a.prefs.Language().SpeechTag())
	if err != nil {
		return "", fmt.Errorf("failed to generate speech: %w", err)
	}
	if err := os.MkdirAll(a.config.AudioTempDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(a.config.AudioTempDir, fmt.Sprintf("speech_%d.mp3", time.Now().UnixNano()))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	return filename, nil
}

// Preferences exposes the shared language and accessibility store
func (a *App) Preferences() *prefs.Store {
	return a.prefs
}

// Cleanup performs cleanup operations
func (a *App) Cleanup() error {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	events := a.events
	a.events = nil
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	if events != nil {
		events.close()
	}

	a.speaker.Cancel()
	a.listener.Close()
	a.chat.Close()

	var errs []error
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.logger.Error("error closing recorder", "error", err)
			errs = append(errs, err)
		}
	}

	if err := a.cleanupTempFiles(); err != nil {
		a.logger.Error("error cleaning up temp files", "error", err)
		errs = append(errs, err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// cleanupTempFiles removes saved speech clips older than an hour
func (a *App) cleanupTempFiles() error {
	if a.config.AudioTempDir == "" {
		return nil
	}
	err := filepath.Walk(a.config.AudioTempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && time.Since(info.ModTime()) > time.Hour {
			return os.Remove(path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
