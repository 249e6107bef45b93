package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	wavHeaderSize = 44
	pcmFormatTag  = 1

	defaultSampleRate    = 24000
	defaultChannels      = 1
	defaultBitsPerSample = 16
)

// ErrInvalidWAV reports a container that cannot be read as 16-bit PCM WAV.
var ErrInvalidWAV = errors.New("invalid wav data")

// Format describes interleaved little-endian PCM.
type Format struct {
	SampleRate    int `json:"sampleRate"`
	Channels      int `json:"channels"`
	BitsPerSample int `json:"bitsPerSample"`
}

// DefaultFormat is what the speech model returns: 24 kHz mono 16-bit.
func DefaultFormat() Format {
	return Format{
		SampleRate:    defaultSampleRate,
		Channels:      defaultChannels,
		BitsPerSample: defaultBitsPerSample,
	}
}

// Validate rejects formats the encoder cannot describe.
func (f Format) Validate() error {
	switch {
	case f.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %d", f.SampleRate)
	case f.Channels <= 0:
		return fmt.Errorf("channels must be positive, got %d", f.Channels)
	case f.BitsPerSample != 16:
		return fmt.Errorf("only 16-bit samples are supported, got %d", f.BitsPerSample)
	}
	return nil
}

// BlockAlign is the byte size of one frame across all channels.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// ByteRate is the number of payload bytes per second.
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// Clip is a PCM payload with its format.
type Clip struct {
	Format Format
	Data   []byte
}

// Duration reports the playback length of the clip.
func (c Clip) Duration() time.Duration {
	rate := c.Format.ByteRate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(len(c.Data)) * time.Second / time.Duration(rate)
}

// EncodeWAV wraps pcm in a 44-byte RIFF/WAVE header.
func EncodeWAV(pcm []byte, f Format) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(wavHeaderSize + len(pcm))
	if err := WriteWAV(&buf, Clip{Format: f, Data: pcm}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteWAV writes clip to w as a WAV file.
func WriteWAV(w io.Writer, clip Clip) error {
	f := clip.Format
	if err := f.Validate(); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(clip.Data)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   pcmFormatTag,
		NumChannels:   uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.ByteRate()),
		BlockAlign:    uint16(f.BlockAlign()),
		BitsPerSample: uint16(f.BitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(clip.Data)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("encode wav: header: %w", err)
	}
	if _, err := w.Write(clip.Data); err != nil {
		return fmt.Errorf("encode wav: payload: %w", err)
	}
	return nil
}

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// ParseWAV reads a PCM WAV file, skipping chunks other than fmt and data.
func ParseWAV(data []byte) (Clip, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Clip{}, fmt.Errorf("%w: missing RIFF/WAVE header", ErrInvalidWAV)
	}
	var (
		format    Format
		haveFmt   bool
		offset    = 12
		byteOrder = binary.LittleEndian
	)
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(byteOrder.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if size < 0 || body+size > len(data) {
			if id == "data" && haveFmt {
				// Streaming writers leave the data size unset; take the rest.
				size = len(data) - body
			} else {
				return Clip{}, fmt.Errorf("%w: chunk %q overruns file", ErrInvalidWAV, id)
			}
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return Clip{}, fmt.Errorf("%w: fmt chunk too short", ErrInvalidWAV)
			}
			chunk := data[body : body+size]
			if tag := byteOrder.Uint16(chunk[0:2]); tag != pcmFormatTag {
				return Clip{}, fmt.Errorf("%w: unsupported format tag %d", ErrInvalidWAV, tag)
			}
			format = Format{
				Channels:      int(byteOrder.Uint16(chunk[2:4])),
				SampleRate:    int(byteOrder.Uint32(chunk[4:8])),
				BitsPerSample: int(byteOrder.Uint16(chunk[14:16])),
			}
			if err := format.Validate(); err != nil {
				return Clip{}, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return Clip{}, fmt.Errorf("%w: data chunk before fmt", ErrInvalidWAV)
			}
			payload := make([]byte, size)
			copy(payload, data[body:body+size])
			return Clip{Format: format, Data: payload}, nil
		}
		offset = body + size + size%2
	}
	return Clip{}, fmt.Errorf("%w: no data chunk", ErrInvalidWAV)
}
