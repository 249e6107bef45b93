package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Buffer holds decoded samples per channel in [-1, 1).
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// Frames reports the number of samples in each channel.
func (b Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration reports the playback length of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Peak returns the largest absolute sample value across channels.
func (b Buffer) Peak() float32 {
	var peak float32
	for _, channel := range b.Channels {
		for _, sample := range channel {
			if sample < 0 {
				sample = -sample
			}
			if sample > peak {
				peak = sample
			}
		}
	}
	return peak
}

// Decode splits interleaved 16-bit little-endian PCM into per-channel float
// samples. A trailing partial frame is dropped.
func Decode(pcm []byte, f Format) (Buffer, error) {
	if err := f.Validate(); err != nil {
		return Buffer{}, fmt.Errorf("decode pcm: %w", err)
	}
	frameSize := f.BlockAlign()
	frames := len(pcm) / frameSize
	buf := Buffer{
		SampleRate: f.SampleRate,
		Channels:   make([][]float32, f.Channels),
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		frame := pcm[i*frameSize:]
		for ch := 0; ch < f.Channels; ch++ {
			sample := int16(binary.LittleEndian.Uint16(frame[ch*2:]))
			buf.Channels[ch][i] = float32(sample) / 32768
		}
	}
	return buf, nil
}
