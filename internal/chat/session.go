// Package chat runs the conversation with the learning assistant: a transcript, one
// streaming reply at a time, and speech once a reply is complete.
package chat

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/Nadercr7/Shamel/internal/i18n"
	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/google/uuid"
)

// Conversation is a remote chat that keeps its own history
type Conversation interface {
	SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error]
}

// Factory opens a conversation primed for lang
type Factory func(ctx context.Context, lang models.Language) (Conversation, error)

// Speaker reads finished replies aloud
type Speaker interface {
	Speak(text, tag string)
}

// Session owns the transcript of one conversation. It is replaced wholesale, not
// migrated, when the language changes.
type Session struct {
	mu      sync.Mutex
	factory Factory
	speaker Speaker
	logger  *slog.Logger

	id           string
	lang         models.Language
	conversation Conversation
	messages     []models.ConversationMessage
	reply        strings.Builder
	replying     bool
	loading      bool

	generation uint64
	cancel     context.CancelFunc
	inflight   sync.WaitGroup

	onChange func()
}

// New creates a session in lang seeded with the greeting. A nil factory or a factory
// error leaves the session without a conversation; Submit then does nothing.
func New(factory Factory, speaker Speaker, lang models.Language, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{factory: factory, speaker: speaker, logger: logger}
	s.mu.Lock()
	s.reset(lang)
	s.mu.Unlock()
	return s
}

// OnChange registers a callback run after every transcript or loading change
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// ID identifies the current conversation in logs
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Language returns the language the conversation was opened in
func (s *Session) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Available reports whether a remote conversation exists
func (s *Session) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation != nil
}

// Loading reports whether a reply is in flight
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Messages returns the transcript, including the reply being streamed
func (s *Session) Messages() []models.ConversationMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ConversationMessage, len(s.messages), len(s.messages)+1)
	copy(out, s.messages)
	if s.replying {
		out = append(out, models.ConversationMessage{Role: models.Assistant, Text: s.reply.String()})
	}
	return out
}

// Submit sends input to the assistant. It returns false when the input is blank, the
// session has no conversation, or a reply is still loading.
func (s *Session) Submit(input string) bool {
	text := strings.TrimSpace(input)

	s.mu.Lock()
	if text == "" || s.conversation == nil || s.loading {
		s.mu.Unlock()
		return false
	}

	s.messages = append(s.messages, models.ConversationMessage{Role: models.User, Text: text})
	s.reply.Reset()
	s.replying = true
	s.loading = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	gen := s.generation
	conversation := s.conversation
	lang := s.lang
	logger := s.logger.With("session", s.id)
	s.inflight.Add(1)
	s.mu.Unlock()

	s.changed()

	go func() {
		defer s.inflight.Done()
		defer cancel()
		s.stream(ctx, gen, conversation, text, lang, logger)
	}()
	return true
}

func (s *Session) stream(ctx context.Context, gen uint64, conversation Conversation, text string, lang models.Language, logger *slog.Logger) {
	for chunk, err := range conversation.SendMessageStream(ctx, text) {
		if err != nil {
			s.fail(gen, err, lang, logger)
			return
		}
		if !s.appendChunk(gen, chunk) {
			return
		}
	}
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	reply := s.reply.String()
	s.finalize(reply)
	s.mu.Unlock()
	s.changed()

	if s.speaker != nil {
		s.speaker.Speak(reply, lang.SpeechTag())
	}
}

func (s *Session) appendChunk(gen uint64, chunk string) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	s.reply.WriteString(chunk)
	s.mu.Unlock()
	s.changed()
	return true
}

func (s *Session) fail(gen uint64, err error, lang models.Language, logger *slog.Logger) {
	if errors.Is(err, context.Canceled) {
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	logger.Error("chat reply failed", "error", err)

	failure := i18n.T(lang, "chatError", nil)
	if s.reply.Len() == 0 {
		s.finalize(failure)
	} else {
		s.finalize(s.reply.String())
		s.messages = append(s.messages, models.ConversationMessage{Role: models.Assistant, Text: failure})
	}
	s.mu.Unlock()
	s.changed()
}

// finalize turns the streamed reply into a transcript entry; caller holds the mutex
func (s *Session) finalize(text string) {
	s.messages = append(s.messages, models.ConversationMessage{Role: models.Assistant, Text: text})
	s.reply.Reset()
	s.replying = false
	s.loading = false
	s.cancel = nil
}

// SetLanguage drops the conversation and its transcript and starts over in lang
func (s *Session) SetLanguage(lang models.Language) {
	s.mu.Lock()
	s.reset(lang)
	s.mu.Unlock()
	s.changed()
}

// reset cancels any reply and opens a fresh conversation; caller holds the mutex
func (s *Session) reset(lang models.Language) {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.id = uuid.NewString()
	s.lang = lang
	s.reply.Reset()
	s.replying = false
	s.loading = false
	s.messages = []models.ConversationMessage{
		{Role: models.Assistant, Text: i18n.T(lang, "chatGreeting", nil)},
	}

	s.conversation = nil
	if s.factory == nil {
		s.logger.Warn("assistant is not configured", "session", s.id)
		return
	}
	conversation, err := s.factory(context.Background(), lang)
	if err != nil {
		s.logger.Error("failed to open conversation", "session", s.id, "error", err)
		return
	}
	s.conversation = conversation
	s.logger.Info("conversation opened", "session", s.id, "language", string(lang))
}

// Wait blocks until the in-flight reply, if any, has settled
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close cancels any reply in flight
func (s *Session) Close() {
	s.mu.Lock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
	s.replying = false
	s.mu.Unlock()
}

func (s *Session) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
