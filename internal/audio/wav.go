package audio

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/Nadercr7/Shamel/internal/models"
)

const wavHeaderSize = 44

// EncodeWAV renders captured samples as a 16-bit PCM WAV file in memory
func EncodeWAV(audioData *models.AudioData) []byte {
	channels := audioData.Channels
	if channels <= 0 {
		channels = 1
	}

	header := []byte{
		'R', 'I', 'F', 'F',
		0, 0, 0, 0,
		'W', 'A', 'V', 'E',

		'f', 'm', 't', ' ',
		16, 0, 0, 0,
		1, 0, // PCM
		0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0,
		16, 0,

		'd', 'a', 't', 'a',
		0, 0, 0, 0,
	}

	sampleRate := uint32(audioData.SampleRate)
	bitsPerSample := uint16(16)
	byteRate := sampleRate * uint32(channels) * uint32(bitsPerSample) / 8
	blockAlign := uint16(channels) * bitsPerSample / 8
	dataSize := uint32(len(audioData.Data) * 2)

	binary.LittleEndian.PutUint32(header[4:8], wavHeaderSize+dataSize-8)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + int(dataSize))
	buf.Write(header)

	sample := make([]byte, 2)
	for _, s := range audioData.Data {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(sample, uint16(int16(s*32767)))
		buf.Write(sample)
	}
	return buf.Bytes()
}

// RMS returns the root mean square level of the samples, 0 for an empty slice
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
