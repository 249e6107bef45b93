package session

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenPathAppliesPragmas(t *testing.T) {
	store, err := OpenPath(filepath.Join(t.TempDir(), "pragma.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	var mode string
	if err := store.db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Fatalf("expected WAL journal, got %q", mode)
	}
	var timeout int
	if err := store.db.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Fatalf("expected busy_timeout 5000, got %d", timeout)
	}
}

func TestIsBusyIgnoresOtherErrors(t *testing.T) {
	if isBusy(nil) || isBusy(context.Canceled) {
		t.Fatal("expected non-sqlite errors not to count as busy")
	}
}
