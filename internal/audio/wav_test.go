package audio

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 48000) // one second of 24 kHz mono 16-bit
	data, err := EncodeWAV(pcm, DefaultFormat())
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	if len(data) != wavHeaderSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", wavHeaderSize+len(pcm), len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Fatalf("unexpected chunk ids %q %q %q", data[0:4], data[8:12], data[36:40])
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("riff size = %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 24000 {
		t.Fatalf("sample rate = %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 48000 {
		t.Fatalf("byte rate = %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 2 {
		t.Fatalf("block align = %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data size = %d", got)
	}

	clip, err := ParseWAV(data)
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	if clip.Format != DefaultFormat() {
		t.Fatalf("unexpected format %+v", clip.Format)
	}
	if clip.Duration() != time.Second {
		t.Fatalf("expected 1s, got %s", clip.Duration())
	}
}

func TestEncodeWAVRejectsUnsupportedFormat(t *testing.T) {
	if _, err := EncodeWAV([]byte{0, 0}, Format{SampleRate: 24000, Channels: 1, BitsPerSample: 8}); err == nil {
		t.Fatal("expected error for 8-bit format")
	}
	if _, err := EncodeWAV([]byte{0, 0}, Format{Channels: 1, BitsPerSample: 16}); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestParseWAVSkipsUnknownChunks(t *testing.T) {
	data, err := EncodeWAV([]byte{1, 0, 2, 0}, Format{SampleRate: 16000, Channels: 2, BitsPerSample: 16})
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	list := []byte{'L', 'I', 'S', 'T', 3, 0, 0, 0, 'a', 'b', 'c', 0}
	withList := append(append(append([]byte{}, data[:36]...), list...), data[36:]...)

	clip, err := ParseWAV(withList)
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	if clip.Format.Channels != 2 || clip.Format.SampleRate != 16000 {
		t.Fatalf("unexpected format %+v", clip.Format)
	}
	if len(clip.Data) != 4 || clip.Data[0] != 1 || clip.Data[2] != 2 {
		t.Fatalf("unexpected payload %v", clip.Data)
	}
}

func TestParseWAVRejectsInvalidInput(t *testing.T) {
	valid, err := EncodeWAV([]byte{0, 0}, DefaultFormat())
	if err != nil {
		t.Fatalf("EncodeWAV: %v", err)
	}
	float := append([]byte{}, valid...)
	binary.LittleEndian.PutUint16(float[20:22], 3)

	tests := map[string][]byte{
		"empty":     nil,
		"not riff":  []byte("RIFX0000WAVEfmt "),
		"truncated": valid[:30],
		"float tag": float,
		"no data":   valid[:36],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseWAV(data); !errors.Is(err, ErrInvalidWAV) {
				t.Fatalf("expected ErrInvalidWAV, got %v", err)
			}
		})
	}
}
