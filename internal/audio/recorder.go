// Package audio captures microphone input and plays synthesized speech.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/gordonklaus/portaudio"
)

// Recorder handles audio recording functionality
type Recorder struct {
	stream      *portaudio.Stream
	isRecording bool
	buffer      []float32
	mutex       sync.Mutex
	sampleRate  int
	channels    int
	bufferSize  int
}

// NewRecorder initializes PortAudio and creates a new recorder
func NewRecorder(sampleRate, channels, bufferSize int) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	return &Recorder{
		sampleRate: sampleRate,
		channels:   channels,
		bufferSize: bufferSize,
		buffer:     make([]float32, 0, sampleRate*channels),
	}, nil
}

// StartRecording opens the default input device and begins capturing
func (r *Recorder) StartRecording() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.isRecording {
		return fmt.Errorf("recording is already in progress")
	}

	r.buffer = r.buffer[:0]

	defaultDevice, err := portaudio.DefaultInputDevice()
	if err != nil {
		return fmt.Errorf("failed to get default input device: %w", err)
	}

	inputParams := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   defaultDevice,
			Channels: r.channels,
			Latency:  defaultDevice.DefaultLowInputLatency,
		},
		SampleRate:      float64(r.sampleRate),
		FramesPerBuffer: r.bufferSize,
	}

	stream, err := portaudio.OpenStream(inputParams, r.recordCallback)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	r.stream = stream
	r.isRecording = true
	return nil
}

// Drain returns the audio captured since the last drain and keeps recording
func (r *Recorder) Drain() *models.AudioData {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	audioData := r.snapshot()
	r.buffer = r.buffer[:0]
	return audioData
}

// StopRecording stops capturing and discards anything not yet drained
func (r *Recorder) StopRecording() error {
	r.mutex.Lock()
	if !r.isRecording {
		r.mutex.Unlock()
		return fmt.Errorf("no recording in progress")
	}
	r.isRecording = false
	stream := r.stream
	r.stream = nil
	r.mutex.Unlock()

	if err := stream.Stop(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to stop audio stream: %w", err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}

	r.mutex.Lock()
	r.buffer = r.buffer[:0]
	r.mutex.Unlock()
	return nil
}

// IsRecording returns true if recording is in progress
func (r *Recorder) IsRecording() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.isRecording
}

// recordCallback is called by PortAudio when audio data is available
func (r *Recorder) recordCallback(inputBuffer []float32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isRecording {
		return
	}
	r.buffer = append(r.buffer, inputBuffer...)
}

// snapshot copies the buffer; caller holds the mutex
func (r *Recorder) snapshot() *models.AudioData {
	data := make([]float32, len(r.buffer))
	copy(data, r.buffer)
	return &models.AudioData{
		Data:       data,
		SampleRate: r.sampleRate,
		Channels:   r.channels,
		Duration:   time.Duration(len(data)/r.channels) * time.Second / time.Duration(r.sampleRate),
	}
}

// Close stops any capture and terminates PortAudio
func (r *Recorder) Close() error {
	r.mutex.Lock()
	stream := r.stream
	r.isRecording = false
	r.stream = nil
	r.mutex.Unlock()

	// the callback takes the mutex, so the stream is stopped without holding it
	if stream != nil {
		stream.Stop()
		stream.Close()
	}

	return portaudio.Terminate()
}
