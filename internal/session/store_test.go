package session_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/narration"
	"dooze/internal/services"
	"dooze/internal/session"
	"dooze/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if store.Path() != cfg.DatabasePath() {
		t.Fatalf("expected database at %s, got %s", cfg.DatabasePath(), store.Path())
	}
	if _, err := os.Stat(cfg.AudioDir()); err != nil {
		t.Fatalf("expected audio dir to exist: %v", err)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reopened.Close()
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	_ = store.Close()

	db := openRaw(t, cfg.DatabasePath())
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := session.Open(cfg); !errors.Is(err, session.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestCreateAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	created := testsupport.NewSession(t, store, testsupport.SampleBrief())
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if created.Status != session.StatusDraft || created.AudioStatus != audio.StatusIdle {
		t.Fatalf("unexpected initial state %s/%s", created.Status, created.AudioStatus)
	}
	if created.Brief.Tone == "" {
		t.Fatal("expected brief to be normalized before storing")
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.Brief.ProductName != "Kopi Senja" || fetched.ContentType != narration.Promotion {
		t.Fatalf("unexpected fetched session %#v", fetched)
	}
	if fetched.Language != brief.Indonesian {
		t.Fatalf("expected language id, got %q", fetched.Language)
	}
	if fetched.CreatedAt.IsZero() || fetched.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be parsed")
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.UpdateScript(context.Background(), "missing", "x"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first := testsupport.NewSession(t, store, testsupport.SampleBrief())
	second := testsupport.NewSession(t, store, testsupport.SampleBrief())

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest first, got %v", ids(all))
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("expected only newest session, got %v", ids(limited))
	}
}

func TestNewScriptDiscardsAudio(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	created := testsupport.NewSession(t, store, testsupport.SampleBrief())

	if _, err := store.UpdateScript(ctx, created.ID, "Narator: Halo"); err != nil {
		t.Fatalf("UpdateScript: %v", err)
	}
	withAudio, err := store.UpdateAudio(ctx, created.ID, audio.StatusReady, brief.Voice("Puck"), "/tmp/a.wav", "")
	if err != nil {
		t.Fatalf("UpdateAudio: %v", err)
	}
	if !withAudio.HasAudio() || withAudio.Voice != "Puck" {
		t.Fatalf("expected ready audio, got %#v", withAudio)
	}

	edited, err := store.UpdateScript(ctx, created.ID, "Narator: Halo lagi")
	if err != nil {
		t.Fatalf("UpdateScript: %v", err)
	}
	if edited.AudioStatus != audio.StatusIdle || edited.AudioPath != "" || edited.Voice != "" {
		t.Fatalf("expected audio reset, got %s %q %q", edited.AudioStatus, edited.AudioPath, edited.Voice)
	}
	if edited.Status != session.StatusReady || edited.Script != "Narator: Halo lagi" {
		t.Fatalf("unexpected script state %#v", edited)
	}
}

func TestGenerationLifecycle(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	created := testsupport.NewSession(t, store, testsupport.SampleBrief())
	if _, err := store.UpdateScript(ctx, created.ID, "lama"); err != nil {
		t.Fatalf("UpdateScript: %v", err)
	}

	story := testsupport.SampleBrief()
	story.ContentType = narration.Story
	story.Tone = ""
	generating, err := store.BeginGeneration(ctx, created.ID, story)
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if generating.Status != session.StatusGenerating || generating.Script != "" {
		t.Fatalf("expected cleared generating session, got %#v", generating)
	}
	if generating.ContentType != narration.Story || generating.Brief.Tone != brief.DefaultTone(narration.Story) {
		t.Fatalf("expected story brief, got %#v", generating.Brief)
	}

	failed, err := store.FailGeneration(ctx, created.ID, "gagal")
	if err != nil {
		t.Fatalf("FailGeneration: %v", err)
	}
	if failed.Status != session.StatusFailed || failed.Error != "gagal" || failed.HasScript() {
		t.Fatalf("unexpected failed session %#v", failed)
	}

	recovered, err := store.UpdateScript(ctx, created.ID, "baru")
	if err != nil {
		t.Fatalf("UpdateScript: %v", err)
	}
	if recovered.Error != "" {
		t.Fatalf("expected error cleared, got %q", recovered.Error)
	}
}

func TestUpdateAudioDropsPathOnError(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	created := testsupport.NewSession(t, store, testsupport.SampleBrief())

	updated, err := store.UpdateAudio(ctx, created.ID, audio.StatusError, brief.DefaultVoice, "/tmp/stale.wav", "gagal")
	if err != nil {
		t.Fatalf("UpdateAudio: %v", err)
	}
	if updated.AudioPath != "" || updated.Error != "gagal" {
		t.Fatalf("expected no stale audio, got %#v", updated)
	}
	if _, err := store.UpdateAudio(ctx, created.ID, audio.Status("LOUD"), "", "", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	created := testsupport.NewSession(t, store, testsupport.SampleBrief())

	removed, err := store.Delete(ctx, created.ID)
	if err != nil || !removed {
		t.Fatalf("Delete = %v, %v", removed, err)
	}
	removed, err = store.Delete(ctx, created.ID)
	if err != nil || removed {
		t.Fatalf("second Delete = %v, %v", removed, err)
	}
}

func ids(sessions []*session.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}
