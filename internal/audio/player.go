package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"dooze/internal/logging"
)

var commandContext = exec.CommandContext

// Playback is one running playback session.
type Playback interface {
	// Stop halts output. It is safe to call after playback finished.
	Stop() error
	// Done is closed once output has ended for any reason.
	Done() <-chan struct{}
	// Err reports why playback ended; nil for a clean finish or a Stop.
	Err() error
}

// Sink starts playback sessions.
type Sink interface {
	Start(ctx context.Context, clip Clip) (Playback, error)
}

// Player owns at most one active playback session. Starting a new clip
// stops and releases the previous session first.
type Player struct {
	mu      sync.Mutex
	sink    Sink
	current Playback
	logger  *slog.Logger
}

// NewPlayer builds a player around sink.
func NewPlayer(sink Sink, logger *slog.Logger) *Player {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Player{sink: sink, logger: logger}
}

// Play stops any current session and starts clip.
func (p *Player) Play(ctx context.Context, clip Clip) error {
	if len(clip.Data) == 0 {
		return errors.New("play: clip is empty")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.releaseLocked(); err != nil {
		p.logger.Warn("previous playback did not stop cleanly", logging.Error(err))
	}
	if p.sink == nil {
		return errors.New("play: no audio sink configured")
	}
	playback, err := p.sink.Start(ctx, clip)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	p.current = playback
	p.logger.Debug("playback started",
		logging.Duration("duration", clip.Duration()),
		logging.Int("bytes", len(clip.Data)),
	)
	return nil
}

// Stop halts and releases the current session, if any.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releaseLocked()
}

// Close releases the player. It is equivalent to Stop.
func (p *Player) Close() error {
	return p.Stop()
}

// Playing reports whether a session is active and has not finished.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return false
	}
	select {
	case <-p.current.Done():
		return false
	default:
		return true
	}
}

// Status reports PLAYING while a session runs and IDLE otherwise.
func (p *Player) Status() Status {
	if p.Playing() {
		return StatusPlaying
	}
	return StatusIdle
}

// Wait blocks until the current session finishes or ctx ends.
func (p *Player) Wait(ctx context.Context) error {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	if current == nil {
		return nil
	}
	select {
	case <-current.Done():
		return current.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// releaseLocked stops the current session and drops the reference even when
// stopping fails.
func (p *Player) releaseLocked() error {
	if p.current == nil {
		return nil
	}
	err := p.current.Stop()
	p.current = nil
	return err
}

// CommandSink plays clips by streaming a WAV file to an external command's
// stdin, such as `aplay -q -`.
type CommandSink struct {
	Command []string
}

// Start launches the player command with the encoded clip on stdin.
func (s CommandSink) Start(ctx context.Context, clip Clip) (Playback, error) {
	if len(s.Command) == 0 || strings.TrimSpace(s.Command[0]) == "" {
		return nil, errors.New("player command not configured")
	}
	wav, err := EncodeWAV(clip.Data, clip.Format)
	if err != nil {
		return nil, err
	}
	cmd := commandContext(ctx, s.Command[0], s.Command[1:]...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(wav)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", s.Command[0], err)
	}
	playback := &commandPlayback{cmd: cmd, done: make(chan struct{})}
	go playback.wait()
	return playback, nil
}

type commandPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	stopped bool
	err     error
}

func (c *commandPlayback) wait() {
	err := c.cmd.Wait()
	c.mu.Lock()
	if !c.stopped {
		c.err = err
	}
	c.mu.Unlock()
	close(c.done)
}

func (c *commandPlayback) Stop() error {
	select {
	case <-c.done:
		return nil
	default:
	}
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		// The process may have exited between the check and the kill.
		select {
		case <-c.done:
			return nil
		default:
			return fmt.Errorf("stop playback: %w", err)
		}
	}
	<-c.done
	return nil
}

func (c *commandPlayback) Done() <-chan struct{} {
	return c.done
}

func (c *commandPlayback) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
