package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Nadercr7/Shamel/internal/models"
)

func TestEncodeWAV_Header(t *testing.T) {
	data := &models.AudioData{Data: []float32{0, 0.5, -0.5, 2}, SampleRate: 16000, Channels: 1}
	wav := EncodeWAV(data)

	if len(wav) != wavHeaderSize+8 {
		t.Fatalf("expected %d bytes, got %d", wavHeaderSize+8, len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatalf("malformed header")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Fatalf("expected sample rate 16000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 32000 {
		t.Fatalf("expected byte rate 32000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 8 {
		t.Fatalf("expected data size 8, got %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(wav[50:52])); got != 32767 {
		t.Fatalf("expected clipped sample 32767, got %d", got)
	}
}

func TestRMS(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatalf("expected 0 for empty input")
	}
	got := RMS([]float32{0.5, -0.5, 0.5, -0.5})
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestResample(t *testing.T) {
	pcm := make([]byte, 100*bytesPerFrame)
	for i := 0; i < 100; i++ {
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame:], uint16(int16(i*10)))
		binary.LittleEndian.PutUint16(pcm[i*bytesPerFrame+2:], uint16(int16(-i*10)))
	}

	out := Resample(pcm, 24000, 48000)
	if len(out) != 200*bytesPerFrame {
		t.Fatalf("expected 200 frames, got %d", len(out)/bytesPerFrame)
	}
	// frame 3 sits halfway between source frames 1 and 2
	left := int16(binary.LittleEndian.Uint16(out[3*bytesPerFrame:]))
	right := int16(binary.LittleEndian.Uint16(out[3*bytesPerFrame+2:]))
	if left != 15 || right != -15 {
		t.Fatalf("expected 15/-15, got %d/%d", left, right)
	}

	if same := Resample(pcm, 44100, 44100); len(same) != len(pcm) {
		t.Fatalf("same rate should be a no-op")
	}
}
