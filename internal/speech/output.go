package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Nadercr7/Shamel/internal/audio"
)

// ErrNotConfigured is reported when Speak is called without a synthesis credential
var ErrNotConfigured = errors.New("speech synthesis is not configured")

// Synthesizer turns text into an encoded audio payload
type Synthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, text, tag string) ([]byte, error)
}

// Playback is a clip being played
type Playback interface {
	Stop()
	Done() <-chan struct{}
}

// Player starts playback of an encoded audio payload
type Player interface {
	Play(data []byte) (Playback, error)
}

type devicePlayer struct {
	player *audio.Player
}

// NewDevicePlayer adapts the speaker output to Player
func NewDevicePlayer(p *audio.Player) Player {
	return devicePlayer{player: p}
}

func (d devicePlayer) Play(data []byte) (Playback, error) {
	pb, err := d.player.Play(data)
	if err != nil {
		return nil, err
	}
	return pb, nil
}

// OutputSession speaks one text at a time. A new Speak always releases the previous
// request and playback before starting its own.
type OutputSession struct {
	mu          sync.Mutex
	synthesizer Synthesizer
	player      Player
	logger      *slog.Logger

	speaking   bool
	generation uint64
	cancel     context.CancelFunc
	playback   Playback

	notify   func(error)
	onChange func(bool)
}

// NewOutputSession creates a session. A nil synthesizer behaves like a missing credential.
func NewOutputSession(synthesizer Synthesizer, player Player, logger *slog.Logger) *OutputSession {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OutputSession{
		synthesizer: synthesizer,
		player:      player,
		logger:      logger,
	}
}

// OnError registers the user-visible failure notification
func (s *OutputSession) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// OnChange registers a callback for speaking transitions
func (s *OutputSession) OnChange(fn func(speaking bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Speaking reports whether a request or playback is live
func (s *OutputSession) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Speak reads text aloud in the voice selected by the language tag
func (s *OutputSession) Speak(text, tag string) {
	start := strings.TrimSpace(text) != ""
	configured := s.synthesizer != nil && s.synthesizer.Configured()

	// release the previous pair and claim the new one under a single lock
	s.mu.Lock()
	was := s.stop()
	var ctx context.Context
	var gen uint64
	if start && configured {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		s.generation++
		gen = s.generation
		s.cancel = cancel
		// optimistic: set before the request resolves
		s.speaking = true
	}
	onChange := s.onChange
	s.mu.Unlock()

	if was && onChange != nil {
		onChange(false)
	}
	if !start {
		return
	}
	if !configured {
		s.report(ErrNotConfigured)
		return
	}
	if onChange != nil {
		onChange(true)
	}

	go s.run(ctx, gen, text, tag)
}

// Cancel aborts the in-flight request and stops playback. Idempotent.
func (s *OutputSession) Cancel() {
	s.mu.Lock()
	was := s.stop()
	onChange := s.onChange
	s.mu.Unlock()

	if was && onChange != nil {
		onChange(false)
	}
}

// stop invalidates the current generation and releases its pair, reporting whether
// the session was speaking; caller holds the mutex
func (s *OutputSession) stop() bool {
	s.generation++
	was := s.speaking
	s.release()
	return was
}

func (s *OutputSession) run(ctx context.Context, gen uint64, text, tag string) {
	data, err := s.synthesizer.Synthesize(ctx, text, tag)
	if err != nil {
		s.fail(gen, err)
		return
	}

	if !s.current(gen) {
		return
	}
	// decoding can be slow; Cancel must not wait for it
	playback, err := s.player.Play(data)
	if err != nil {
		s.fail(gen, fmt.Errorf("failed to play audio: %w", err))
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		playback.Stop()
		return
	}
	s.playback = playback
	s.mu.Unlock()

	<-playback.Done()
	s.finish(gen)
}

func (s *OutputSession) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

func (s *OutputSession) finish(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.release()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(false)
	}
}

func (s *OutputSession) fail(gen uint64, err error) {
	s.mu.Lock()
	if gen != s.generation || errors.Is(err, context.Canceled) {
		s.mu.Unlock()
		return
	}
	s.release()
	onChange := s.onChange
	s.mu.Unlock()

	s.report(err)
	if onChange != nil {
		onChange(false)
	}
}

// release drops the current pair; caller holds the mutex
func (s *OutputSession) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.playback != nil {
		s.playback.Stop()
		s.playback = nil
	}
	s.speaking = false
}

func (s *OutputSession) report(err error) {
	s.logger.Error("speech synthesis failed", "error", err)

	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(err)
	}
}
