// Package speech coordinates continuous speech recognition and interruptible speech
// synthesis for the UI.
package speech

import (
	"log/slog"
	"strings"
	"sync"
)

// Result is one recognition hypothesis set. Only final results are ever surfaced.
type Result struct {
	Alternatives []string
	Final        bool
}

// ResultEvent carries every result of the recognition run so far; entries before
// ResultIndex were delivered by earlier events
type ResultEvent struct {
	Results     []Result
	ResultIndex int
}

// Handlers receive recognizer events. They may be called from any goroutine.
type Handlers struct {
	OnResult func(ResultEvent)
	OnEnd    func()
	OnError  func(error)
}

// Recognizer is a continuous speech recognition capability
type Recognizer interface {
	Start() error
	Stop()
}

// RecognizerFactory builds a recognizer for a speech language tag such as "ar-SA"
type RecognizerFactory func(tag string, handlers Handlers) (Recognizer, error)

// InputSession tracks a listening session and its finalized transcript
type InputSession struct {
	mu         sync.Mutex
	factory    RecognizerFactory
	recognizer Recognizer
	tag        string
	generation uint64
	logger     *slog.Logger
	warned     bool

	listening  bool
	transcript string

	onTranscript func(string)
	onChange     func()
}

// NewInputSession creates a session for tag. Without a working recognizer the session
// is inert: Start does nothing.
func NewInputSession(factory RecognizerFactory, tag string, logger *slog.Logger) *InputSession {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &InputSession{factory: factory, tag: tag, logger: logger}
	s.mu.Lock()
	s.build()
	s.mu.Unlock()
	return s
}

// OnTranscript registers the callback receiving each finalized transcript
func (s *InputSession) OnTranscript(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTranscript = fn
}

// OnChange registers a callback for listening and transcript changes
func (s *InputSession) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Available reports whether a recognizer exists
func (s *InputSession) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recognizer != nil
}

// Listening reports whether recognition is running
func (s *InputSession) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

// Transcript returns the latest finalized text
func (s *InputSession) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Start clears the transcript and begins listening
func (s *InputSession) Start() {
	s.mu.Lock()
	if s.recognizer == nil || s.listening {
		s.mu.Unlock()
		return
	}
	rec := s.recognizer
	gen := s.generation
	s.transcript = ""
	s.listening = true
	s.mu.Unlock()

	if err := rec.Start(); err != nil {
		s.logger.Error("speech recognition failed to start", "error", err)
		s.mu.Lock()
		if gen == s.generation {
			s.listening = false
		}
		s.mu.Unlock()
	}
	s.changed()
}

// Stop ends listening. Listening is false as soon as Stop returns.
func (s *InputSession) Stop() {
	s.mu.Lock()
	if !s.listening {
		s.mu.Unlock()
		return
	}
	s.listening = false
	rec := s.recognizer
	s.mu.Unlock()

	if rec != nil {
		rec.Stop()
	}
	s.changed()
}

// SetLanguage tears down the recognizer and builds a new one for tag
func (s *InputSession) SetLanguage(tag string) {
	s.mu.Lock()
	old := s.teardown()
	s.tag = tag
	s.build()
	s.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	s.changed()
}

// Close stops recognition permanently
func (s *InputSession) Close() {
	s.mu.Lock()
	old := s.teardown()
	s.factory = nil
	s.mu.Unlock()

	if old != nil {
		old.Stop()
	}
}

// teardown detaches the current recognizer; caller holds the mutex and stops it after unlocking
func (s *InputSession) teardown() Recognizer {
	s.generation++
	old := s.recognizer
	s.recognizer = nil
	s.listening = false
	return old
}

// build constructs a recognizer for the current tag; caller holds the mutex
func (s *InputSession) build() {
	if s.factory == nil {
		s.warnUnavailable(nil)
		return
	}
	gen := s.generation
	rec, err := s.factory(s.tag, Handlers{
		OnResult: func(ev ResultEvent) { s.handleResult(gen, ev) },
		OnEnd:    func() { s.handleEnd(gen) },
		OnError:  func(err error) { s.handleError(gen, err) },
	})
	if err != nil || rec == nil {
		s.warnUnavailable(err)
		return
	}
	s.recognizer = rec
}

func (s *InputSession) warnUnavailable(err error) {
	if s.warned {
		return
	}
	s.warned = true
	if err != nil {
		s.logger.Warn("speech recognition is unavailable", "error", err)
		return
	}
	s.logger.Warn("speech recognition is unavailable")
}

func (s *InputSession) handleResult(gen uint64, ev ResultEvent) {
	var b strings.Builder
	start := ev.ResultIndex
	if start < 0 {
		start = 0
	}
	for i := start; i < len(ev.Results); i++ {
		r := ev.Results[i]
		if r.Final && len(r.Alternatives) > 0 {
			b.WriteString(r.Alternatives[0])
		}
	}
	text := b.String()
	if text == "" {
		return
	}

	s.mu.Lock()
	if gen != s.generation || !s.listening {
		s.mu.Unlock()
		return
	}
	s.transcript = text
	cb := s.onTranscript
	s.mu.Unlock()

	if cb != nil {
		cb(text)
	}
	s.changed()
}

func (s *InputSession) handleEnd(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.listening {
		s.mu.Unlock()
		return
	}
	s.listening = false
	s.mu.Unlock()
	s.changed()
}

func (s *InputSession) handleError(gen uint64, err error) {
	s.logger.Error("speech recognition error", "error", err)
	s.handleEnd(gen)
}

func (s *InputSession) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
