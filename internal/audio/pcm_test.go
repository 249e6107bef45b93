package audio

import (
	"testing"
	"time"
)

func TestDecodeStereo(t *testing.T) {
	// frames: (16384, -32768), (0, 32767) and a dangling byte
	pcm := []byte{0x00, 0x40, 0x00, 0x80, 0x00, 0x00, 0xff, 0x7f, 0x01}
	buf, err := Decode(pcm, Format{SampleRate: 2, Channels: 2, BitsPerSample: 16})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if buf.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Frames())
	}
	if buf.Channels[0][0] != 0.5 || buf.Channels[1][0] != -1 {
		t.Fatalf("unexpected first frame %v %v", buf.Channels[0][0], buf.Channels[1][0])
	}
	if buf.Channels[0][1] != 0 {
		t.Fatalf("expected silence, got %v", buf.Channels[0][1])
	}
	if top := buf.Channels[1][1]; top >= 1 || top < 0.999 {
		t.Fatalf("expected max sample just below 1, got %v", top)
	}
	if buf.Peak() != 1 {
		t.Fatalf("expected peak 1, got %v", buf.Peak())
	}
	if buf.Duration() != time.Second {
		t.Fatalf("expected 1s, got %s", buf.Duration())
	}
}

func TestDecodeRejectsBadFormat(t *testing.T) {
	if _, err := Decode([]byte{0, 0}, Format{SampleRate: 24000, Channels: 0, BitsPerSample: 16}); err == nil {
		t.Fatal("expected error for zero channels")
	}
}

func TestParseStatus(t *testing.T) {
	if ParseStatus(" ready ") != StatusReady {
		t.Fatal("expected READY")
	}
	if ParseStatus("bogus") != StatusIdle {
		t.Fatal("expected unknown status to be IDLE")
	}
}
