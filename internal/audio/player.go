package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always decodes to 16-bit little-endian stereo
const (
	outputChannels = 2
	bytesPerFrame  = 4
	pollInterval   = 20 * time.Millisecond
)

// Player plays MP3 clips through the default output device. The underlying oto context
// can only be created once per process, so it is opened lazily at the first clip's rate
// and later clips are resampled to it.
type Player struct {
	mutex      sync.Mutex
	context    *oto.Context
	sampleRate int
}

// NewPlayer creates a new audio player
func NewPlayer() *Player {
	return &Player{}
}

// Playback is one clip being played
type Playback struct {
	player   *oto.Player
	done     chan struct{}
	stopOnce sync.Once
}

// Play decodes an MP3 payload and starts playing it
func (p *Player) Play(data []byte) (*Playback, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}
	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}

	ctx, rate, err := p.ensureContext(decoder.SampleRate())
	if err != nil {
		return nil, err
	}
	if rate != decoder.SampleRate() {
		pcm = Resample(pcm, decoder.SampleRate(), rate)
	}

	pb := &Playback{
		player: ctx.NewPlayer(bytes.NewReader(pcm)),
		done:   make(chan struct{}),
	}
	pb.player.Play()
	go pb.watch()
	return pb, nil
}

func (p *Player) ensureContext(sampleRate int) (*oto.Context, int, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.context != nil {
		return p.context, p.sampleRate, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: outputChannels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio output: %w", err)
	}
	<-ready

	p.context = ctx
	p.sampleRate = sampleRate
	return ctx, sampleRate, nil
}

func (pb *Playback) watch() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-pb.done:
			return
		case <-ticker.C:
			if !pb.player.IsPlaying() {
				pb.Stop()
				return
			}
		}
	}
}

// Stop halts playback and releases the player. Safe to call more than once.
func (pb *Playback) Stop() {
	pb.stopOnce.Do(func() {
		pb.player.Pause()
		_ = pb.player.Close()
		close(pb.done)
	})
}

// Done is closed when the clip finishes or is stopped
func (pb *Playback) Done() <-chan struct{} {
	return pb.done
}

// Resample converts interleaved 16-bit stereo PCM between sample rates using linear
// interpolation
func Resample(pcm []byte, from, to int) []byte {
	if from == to || from <= 0 || to <= 0 {
		return pcm
	}
	frames := len(pcm) / bytesPerFrame
	if frames == 0 {
		return nil
	}

	outFrames := int(int64(frames) * int64(to) / int64(from))
	out := make([]byte, outFrames*bytesPerFrame)
	step := float64(from) / float64(to)

	sample := func(frame, ch int) float64 {
		off := frame*bytesPerFrame + ch*2
		return float64(int16(binary.LittleEndian.Uint16(pcm[off:])))
	}

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * step
		j := int(pos)
		frac := pos - float64(j)
		next := j + 1
		if next >= frames {
			next = frames - 1
		}
		for ch := 0; ch < outputChannels; ch++ {
			v := sample(j, ch)*(1-frac) + sample(next, ch)*frac
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+ch*2:], uint16(int16(v)))
		}
	}
	return out
}
