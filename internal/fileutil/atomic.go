package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces path with data. Readers see either the previous
// file or the complete new one.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	return replace(path, mode, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}, nil)
}

// CopyFileVerified copies src to dst. The staged copy is re-read and compared
// against the SHA-256 of src before it replaces dst; on any mismatch dst is
// left untouched.
func CopyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	want := sha256.New()
	copyInto := func(w io.Writer) error {
		n, err := io.Copy(w, io.TeeReader(in, want))
		if err != nil {
			return err
		}
		if n != info.Size() {
			return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), n)
		}
		return nil
	}
	verify := func(staged string) error {
		got, err := digest(staged)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, want.Sum(nil)) {
			return fmt.Errorf("copy hash mismatch for %s", filepath.Base(dst))
		}
		return nil
	}
	return replace(dst, info.Mode().Perm(), copyInto, verify)
}

// replace stages content in a temp file beside path, runs the optional check
// on it and renames it into place. The temp file never outlives a failure.
func replace(path string, mode os.FileMode, fill func(io.Writer) error, check func(string) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staged)
		}
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(staged, mode); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if check != nil {
		if err := check(staged); err != nil {
			return err
		}
	}
	if err := os.Rename(staged, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func digest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
