package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dooze/internal/audio"
)

// mp4Header is an ftyp box, enough for content sniffing to report video/mp4.
var mp4Header = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}

// WriteVideo writes a fake MP4 of size bytes (at least the header) and
// returns its path.
func WriteVideo(t testing.TB, dir, name string, size int) string {
	t.Helper()
	data := make([]byte, max(size, len(mp4Header)))
	copy(data, mp4Header)
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// SilentClip returns ms milliseconds of silence in the default speech format.
func SilentClip(ms int) audio.Clip {
	format := audio.DefaultFormat()
	frames := format.SampleRate * ms / 1000
	return audio.Clip{Format: format, Data: make([]byte, frames*format.BlockAlign())}
}
