package audio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakePlayback struct {
	id      int
	log     *[]string
	mu      *sync.Mutex
	done    chan struct{}
	once    sync.Once
	stopErr error
}

func (f *fakePlayback) Stop() error {
	f.mu.Lock()
	*f.log = append(*f.log, "stop")
	f.mu.Unlock()
	f.once.Do(func() { close(f.done) })
	return f.stopErr
}

func (f *fakePlayback) Done() <-chan struct{} { return f.done }
func (f *fakePlayback) Err() error            { return nil }

type fakeSink struct {
	mu       sync.Mutex
	log      []string
	started  []*fakePlayback
	stopErr  error
	startErr error
}

func (s *fakeSink) Start(_ context.Context, _ Clip) (Playback, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, "start")
	pb := &fakePlayback{id: len(s.started), log: &s.log, mu: &s.mu, done: make(chan struct{}), stopErr: s.stopErr}
	s.started = append(s.started, pb)
	return pb, nil
}

func testClip() Clip {
	return Clip{Format: DefaultFormat(), Data: make([]byte, 480)}
}

func TestPlayerStopsPreviousSessionBeforeStarting(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(sink, nil)
	ctx := context.Background()

	if err := player.Play(ctx, testClip()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if player.Status() != StatusPlaying {
		t.Fatalf("expected PLAYING, got %s", player.Status())
	}
	if err := player.Play(ctx, testClip()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	want := []string{"start", "stop", "start"}
	if len(sink.log) != len(want) {
		t.Fatalf("expected %v, got %v", want, sink.log)
	}
	for i := range want {
		if sink.log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sink.log)
		}
	}
}

func TestPlayerReleasesEvenWhenStopFails(t *testing.T) {
	sink := &fakeSink{stopErr: errors.New("device busy")}
	player := NewPlayer(sink, nil)
	if err := player.Play(context.Background(), testClip()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := player.Stop(); err == nil {
		t.Fatal("expected stop error to surface")
	}
	if player.Playing() {
		t.Fatal("expected session to be released")
	}
	if err := player.Close(); err != nil {
		t.Fatalf("Close after release: %v", err)
	}
}

func TestPlayerRejectsEmptyClip(t *testing.T) {
	player := NewPlayer(&fakeSink{}, nil)
	if err := player.Play(context.Background(), Clip{Format: DefaultFormat()}); err == nil {
		t.Fatal("expected empty clip error")
	}
}

func TestPlayerSinkFailureLeavesIdle(t *testing.T) {
	player := NewPlayer(&fakeSink{startErr: errors.New("no device")}, nil)
	if err := player.Play(context.Background(), testClip()); err == nil {
		t.Fatal("expected start error")
	}
	if player.Status() != StatusIdle {
		t.Fatalf("expected IDLE, got %s", player.Status())
	}
}

func TestCommandSinkPlaysToCompletion(t *testing.T) {
	player := NewPlayer(CommandSink{Command: []string{"cat"}}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := player.Play(ctx, testClip()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := player.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if player.Playing() {
		t.Fatal("expected playback to have finished")
	}
}

func TestCommandSinkStopKillsProcess(t *testing.T) {
	player := NewPlayer(CommandSink{Command: []string{"sleep", "30"}}, nil)
	if err := player.Play(context.Background(), testClip()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	started := time.Now()
	if err := player.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if time.Since(started) > 5*time.Second {
		t.Fatal("stop did not kill the player process")
	}
	if player.Playing() {
		t.Fatal("expected no active session")
	}
}

func TestCommandSinkRequiresCommand(t *testing.T) {
	if _, err := (CommandSink{}).Start(context.Background(), testClip()); err == nil {
		t.Fatal("expected error for empty command")
	}
}
