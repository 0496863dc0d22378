package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Nadercr7/Shamel/internal/ai"
	"github.com/Nadercr7/Shamel/internal/config"
)

type fakeSynth struct {
	mu         sync.Mutex
	configured bool
	calls      []string
	contexts   []context.Context
	respond    func(ctx context.Context, text string) ([]byte, error)
}

func (f *fakeSynth) Configured() bool { return f.configured }

func (f *fakeSynth) Synthesize(ctx context.Context, text, tag string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.contexts = append(f.contexts, ctx)
	respond := f.respond
	f.mu.Unlock()
	return respond(ctx, text)
}

func (f *fakeSynth) context(i int) context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contexts[i]
}

type fakePlayback struct {
	mu      sync.Mutex
	stopped int
	done    chan struct{}
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped++
	if p.stopped == 1 {
		close(p.done)
	}
}

func (p *fakePlayback) Done() <-chan struct{} { return p.done }

func (p *fakePlayback) stops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type fakePlayer struct {
	mu        sync.Mutex
	playbacks []*fakePlayback
	played    chan *fakePlayback

	// decoding holds Play until closed when set
	decoding chan struct{}
	entered  chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{played: make(chan *fakePlayback, 8), entered: make(chan struct{}, 8)}
}

func (p *fakePlayer) Play(data []byte) (Playback, error) {
	p.entered <- struct{}{}
	if p.decoding != nil {
		<-p.decoding
	}
	pb := &fakePlayback{done: make(chan struct{})}
	p.mu.Lock()
	p.playbacks = append(p.playbacks, pb)
	p.mu.Unlock()
	p.played <- pb
	return pb, nil
}

func (p *fakePlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.playbacks)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSpeak_SecondCallReleasesFirst(t *testing.T) {
	synth := &fakeSynth{configured: true, respond: func(ctx context.Context, text string) ([]byte, error) {
		if text == "first" {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []byte("audio"), nil
	}}
	player := newFakePlayer()
	s := NewOutputSession(synth, player, nil)

	var notified []error
	s.OnError(func(err error) { notified = append(notified, err) })

	s.Speak("first", "en-US")
	waitFor(t, func() bool {
		synth.mu.Lock()
		defer synth.mu.Unlock()
		return len(synth.calls) == 1
	})
	s.Speak("second", "en-US")

	if synth.context(0).Err() == nil {
		t.Fatalf("first request was not aborted")
	}

	pb := <-player.played
	if !s.Speaking() {
		t.Fatalf("expected speaking while the second clip plays")
	}
	if player.count() != 1 {
		t.Fatalf("expected exactly one playback, got %d", player.count())
	}

	s.Speak("", "en-US")
	if pb.stops() != 1 {
		t.Fatalf("expected playback released, stops=%d", pb.stops())
	}
	if s.Speaking() {
		t.Fatalf("expected speaking=false after cancel")
	}
	time.Sleep(20 * time.Millisecond)
	if len(notified) != 0 {
		t.Fatalf("cancellation must not be reported, got %v", notified)
	}
}

func TestSpeak_PlaybackCompletes(t *testing.T) {
	synth := &fakeSynth{configured: true, respond: func(ctx context.Context, text string) ([]byte, error) {
		return []byte("audio"), nil
	}}
	player := newFakePlayer()
	s := NewOutputSession(synth, player, nil)

	transitions := make(chan bool, 4)
	s.OnChange(func(speaking bool) { transitions <- speaking })

	s.Speak("hello", "en-US")
	pb := <-player.played
	pb.Stop()

	if got := <-transitions; !got {
		t.Fatalf("expected speaking=true first")
	}
	if got := <-transitions; got {
		t.Fatalf("expected speaking=false after playback ends")
	}
	if s.Speaking() {
		t.Fatalf("expected speaking=false")
	}
}

func TestCancel_Idempotent(t *testing.T) {
	s := NewOutputSession(&fakeSynth{configured: true}, newFakePlayer(), nil)
	changes := 0
	s.OnChange(func(bool) { changes++ })

	s.Cancel()
	s.Cancel()
	if s.Speaking() {
		t.Fatalf("expected speaking=false")
	}
	if changes != 0 {
		t.Fatalf("idle cancel should not report a transition")
	}
}

func TestSpeak_BlankAndUnconfigured(t *testing.T) {
	synth := &fakeSynth{configured: false}
	s := NewOutputSession(synth, newFakePlayer(), nil)

	var notified []error
	s.OnError(func(err error) { notified = append(notified, err) })

	s.Speak("   ", "en-US")
	if len(notified) != 0 {
		t.Fatalf("blank text should be a silent no-op")
	}

	s.Speak("hello", "en-US")
	if len(notified) != 1 || !errors.Is(notified[0], ErrNotConfigured) {
		t.Fatalf("expected one ErrNotConfigured notification, got %v", notified)
	}
	if s.Speaking() || len(synth.calls) != 0 {
		t.Fatalf("unconfigured session must not issue requests")
	}
}

func TestSpeak_ServerErrorRaisesOneNotification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.ElevenLabsAPIKey = "key"
	cfg.ElevenLabsBaseURL = srv.URL
	client := ai.NewElevenLabsClient(cfg)

	player := newFakePlayer()
	s := NewOutputSession(client, player, nil)

	var mu sync.Mutex
	var transitions []bool
	notified := make(chan error, 4)
	s.OnChange(func(speaking bool) {
		mu.Lock()
		transitions = append(transitions, speaking)
		mu.Unlock()
	})
	s.OnError(func(err error) { notified <- err })

	s.Speak("hello", "en-US")

	err := <-notified
	var statusErr *ai.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected a 500 status error, got %v", err)
	}

	var got []bool
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		got = append([]bool(nil), transitions...)
		return len(got) >= 2
	})
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("expected speaking true then false, got %v", got)
	}
	if player.count() != 0 {
		t.Fatalf("no audio resource should be created")
	}
	select {
	case extra := <-notified:
		t.Fatalf("expected a single notification, got another: %v", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSpeak_ConcurrentCallsLeaveOneLiveRequest(t *testing.T) {
	synth := &fakeSynth{configured: true, respond: func(ctx context.Context, text string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	s := NewOutputSession(synth, newFakePlayer(), nil)

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Speak("hello", "en-US")
		}()
	}
	wg.Wait()

	waitFor(t, func() bool {
		synth.mu.Lock()
		defer synth.mu.Unlock()
		return len(synth.calls) == callers
	})

	live := 0
	for i := 0; i < callers; i++ {
		if synth.context(i).Err() == nil {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected exactly one live request, got %d", live)
	}

	s.Cancel()
	for i := 0; i < callers; i++ {
		if synth.context(i).Err() == nil {
			t.Fatalf("request %d outlived Cancel", i)
		}
	}
}

func TestCancel_DoesNotWaitForDecode(t *testing.T) {
	synth := &fakeSynth{configured: true, respond: func(ctx context.Context, text string) ([]byte, error) {
		return []byte("audio"), nil
	}}
	player := newFakePlayer()
	player.decoding = make(chan struct{})
	s := NewOutputSession(synth, player, nil)

	s.Speak("hello", "en-US")
	<-player.entered

	canceled := make(chan struct{})
	go func() {
		s.Cancel()
		close(canceled)
	}()
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatalf("Cancel blocked while audio was decoding")
	}

	close(player.decoding)
	pb := <-player.played
	waitFor(t, func() bool { return pb.stops() == 1 })
	if s.Speaking() {
		t.Fatalf("a playback decoded after Cancel must not revive the session")
	}
}
