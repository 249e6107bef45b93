package testsupport

import (
	"context"
	"testing"

	"dooze/internal/brief"
	"dooze/internal/config"
	"dooze/internal/narration"
	"dooze/internal/session"
)

// MustOpenStore opens a session.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *session.Store {
	t.Helper()

	store, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SampleBrief returns a complete promotion brief.
func SampleBrief() brief.Brief {
	return brief.Brief{
		ContentType:    narration.Promotion,
		ProductName:    "Kopi Senja",
		Description:    "Kopi susu gula aren dengan biji lokal",
		TargetAudience: "Pekerja muda",
		Platform:       brief.TikTokScript,
		Language:       brief.Indonesian,
	}
}

// NewSession creates a draft session for tests using the provided store.
func NewSession(t testing.TB, store *session.Store, b brief.Brief) *session.Session {
	t.Helper()

	created, err := store.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return created
}
