package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/fileutil"
	"dooze/internal/logging"
	"dooze/internal/narration"
	"dooze/internal/services"
	"dooze/internal/session"
)

// ScriptGenerator writes a script for a brief.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, b brief.Brief) (string, error)
}

// VideoAnalyzer extracts brief fields from a video.
type VideoAnalyzer interface {
	AnalyzeVideo(ctx context.Context, data []byte, mimeType string, lang brief.Language) (brief.VideoAnalysis, error)
}

// SpeechSynthesizer turns narration text into PCM audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, voice brief.Voice) (audio.Clip, error)
}

// Dependencies wires a Service. Generator, Analyzer and Synthesizer may be
// nil; the matching operations then report a configuration error.
type Dependencies struct {
	Store        *session.Store
	Generator    ScriptGenerator
	Analyzer     VideoAnalyzer
	Synthesizer  SpeechSynthesizer
	AudioDir     string
	DefaultVoice brief.Voice
	Events       Publisher
	Logger       *slog.Logger
}

// Service runs studio operations against stored sessions.
type Service struct {
	store        *session.Store
	generator    ScriptGenerator
	analyzer     VideoAnalyzer
	synthesizer  SpeechSynthesizer
	audioDir     string
	defaultVoice brief.Voice
	events       Publisher
	logger       *slog.Logger

	locks sessionLocks
}

// New builds a Service from deps.
func New(deps Dependencies) *Service {
	svc := &Service{
		store:        deps.Store,
		generator:    deps.Generator,
		analyzer:     deps.Analyzer,
		synthesizer:  deps.Synthesizer,
		audioDir:     deps.AudioDir,
		defaultVoice: deps.DefaultVoice,
		events:       deps.Events,
		logger:       deps.Logger,
	}
	if svc.events == nil {
		svc.events = nopPublisher{}
	}
	if svc.logger == nil {
		svc.logger = logging.NewNop()
	}
	if svc.defaultVoice == "" {
		svc.defaultVoice = brief.DefaultVoice
	}
	return svc
}

// Create stores a new draft session.
func (s *Service) Create(ctx context.Context, b brief.Brief) (*session.Session, error) {
	created, err := s.store.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	s.publish(created, EventCreated, "")
	return created, nil
}

// Get returns a stored session.
func (s *Service) Get(ctx context.Context, id string) (*session.Session, error) {
	return s.store.Get(ctx, id)
}

// List returns the newest sessions first.
func (s *Service) List(ctx context.Context, limit int) ([]*session.Session, error) {
	return s.store.List(ctx, limit)
}

// Delete removes a session and its audio file.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return services.Wrap(services.ErrNotFound, "studio", "delete", fmt.Sprintf("session %q", id), nil)
	}
	s.removeAudio(id)
	s.events.Publish(Event{SessionID: id, Type: EventDeleted})
	return nil
}

// Generate replaces the session's script with one generated from b. Any
// previous script and audio are discarded first. On failure the script stays
// empty and the session carries the localized message.
func (s *Service) Generate(ctx context.Context, id string, b brief.Brief) (*session.Session, error) {
	b = b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, services.Wrap(services.ErrConfiguration, "studio", "generate", "no script generator configured", nil)
	}

	unlock := s.lock(id)
	defer unlock()

	ctx = services.WithStage(services.WithSessionID(ctx, id), "generate")
	logger := logging.WithContext(ctx, s.logger)

	current, err := s.store.BeginGeneration(ctx, id, b)
	if err != nil {
		return nil, err
	}
	s.removeAudio(id)
	s.publish(current, EventGenerating, "")

	started := time.Now()
	script, genErr := s.generator.GenerateScript(ctx, b)
	if genErr == nil && strings.TrimSpace(script) == "" {
		genErr = services.Wrap(services.ErrExternalService, "studio", "generate", "empty script", nil)
	}
	if genErr != nil {
		message := brief.Message(b.Language, brief.MsgGenerateFailed)
		logger.Error("script generation failed", logging.Error(genErr), logging.Duration("elapsed", time.Since(started)))
		failed, err := s.store.FailGeneration(ctx, id, message)
		if err != nil {
			return nil, errors.Join(genErr, err)
		}
		s.publish(failed, EventGenerateFailed, message)
		return failed, &Failure{Message: message, Err: genErr}
	}

	updated, err := s.store.UpdateScript(ctx, id, script)
	if err != nil {
		return nil, err
	}
	logger.Info("script generated",
		logging.String("content_type", string(b.ContentType)),
		logging.Int("script_chars", len(script)),
		logging.Duration("elapsed", time.Since(started)),
	)
	s.publish(updated, EventScript, "")
	return updated, nil
}

// UpdateScript stores a manual edit. Audio made from the old script is discarded.
func (s *Service) UpdateScript(ctx context.Context, id, script string) (*session.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	updated, err := s.store.UpdateScript(ctx, id, script)
	if err != nil {
		return nil, err
	}
	s.removeAudio(id)
	s.publish(updated, EventScript, "")
	return updated, nil
}

// Narration derives the display and speech narrations of a session's script.
func Narration(sess *session.Session) narration.Result {
	if sess == nil {
		return narration.Process("", narration.Promotion)
	}
	return narration.Process(sess.Script, sess.ContentType)
}

// Narration loads a session and derives its narrations.
func (s *Service) Narration(ctx context.Context, id string) (narration.Result, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return narration.Result{}, err
	}
	return Narration(sess), nil
}

// Speak synthesizes the speech narration of the session's script with voice
// and stores it as a WAV file. A failure leaves the session in ERROR with no
// audio file.
func (s *Service) Speak(ctx context.Context, id string, voice brief.Voice) (*session.Session, error) {
	if s.synthesizer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "studio", "speak", "no speech synthesizer configured", nil)
	}
	if voice == "" {
		voice = s.defaultVoice
	}
	parsed, err := brief.ParseVoice(string(voice))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "studio", "speak", "", err)
	}
	voice = parsed

	unlock := s.lock(id)
	defer unlock()

	ctx = services.WithStage(services.WithSessionID(ctx, id), "speak")
	logger := logging.WithContext(ctx, s.logger)

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lang := sess.Language
	text := narration.Speech(sess.Script)
	if !sess.HasScript() || strings.TrimSpace(text) == "" {
		message := brief.Message(lang, brief.MsgEmptyScript)
		return sess, &Failure{
			Message: message,
			Err:     services.Wrap(services.ErrValidation, "studio", "speak", "script is empty", nil),
		}
	}

	s.removeAudio(id)
	generating, err := s.store.UpdateAudio(ctx, id, audio.StatusGenerating, voice, "", "")
	if err != nil {
		return nil, err
	}
	s.publish(generating, EventAudio, "")

	started := time.Now()
	clip, err := s.synthesizer.Synthesize(ctx, text, voice)
	var path string
	if err == nil {
		path, err = s.writeAudio(id, clip)
	}
	if err != nil {
		message := brief.Message(lang, brief.MsgSpeechFailed)
		logger.Error("speech synthesis failed", logging.Error(err), logging.String("voice", string(voice)))
		failed, storeErr := s.store.UpdateAudio(ctx, id, audio.StatusError, voice, "", message)
		if storeErr != nil {
			return nil, errors.Join(err, storeErr)
		}
		s.publish(failed, EventAudio, message)
		return failed, &Failure{Message: message, Err: err}
	}

	ready, err := s.store.UpdateAudio(ctx, id, audio.StatusReady, voice, path, "")
	if err != nil {
		return nil, err
	}
	logger.Info("speech synthesized",
		logging.String("voice", string(voice)),
		logging.Int("speech_chars", len(text)),
		logging.Duration("audio_duration", clip.Duration()),
		logging.Duration("elapsed", time.Since(started)),
	)
	s.publish(ready, EventAudio, "")
	return ready, nil
}

// Audio returns the session and its WAV file path when audio is ready.
func (s *Service) Audio(ctx context.Context, id string) (*session.Session, string, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !sess.HasAudio() {
		return sess, "", services.Wrap(services.ErrNotFound, "studio", "audio", fmt.Sprintf("session %q has no audio", id), nil)
	}
	if _, err := os.Stat(sess.AudioPath); err != nil {
		return sess, "", services.Wrap(services.ErrNotFound, "studio", "audio", "audio file missing", err)
	}
	return sess, sess.AudioPath, nil
}

// Analyze reads a video into brief fields. Fields the model leaves empty stay
// empty so ApplyTo keeps what the user already typed.
func (s *Service) Analyze(ctx context.Context, data []byte, mimeType string, lang brief.Language) (brief.VideoAnalysis, error) {
	if s.analyzer == nil {
		return brief.VideoAnalysis{}, services.Wrap(services.ErrConfiguration, "studio", "analyze", "no video analyzer configured", nil)
	}
	if lang == "" {
		lang = brief.Indonesian
	}
	ctx = services.WithStage(ctx, "analyze")
	started := time.Now()
	analysis, err := s.analyzer.AnalyzeVideo(ctx, data, mimeType, lang)
	if err != nil {
		logging.WithContext(ctx, s.logger).Error("video analysis failed", logging.Error(err))
		if errors.Is(err, services.ErrValidation) {
			return brief.VideoAnalysis{}, err
		}
		return brief.VideoAnalysis{}, &Failure{Message: brief.Message(lang, brief.MsgAnalyzeFailed), Err: err}
	}
	s.logger.Info("video analyzed",
		logging.Int("video_bytes", len(data)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return analysis, nil
}

// AudioPath is where the session's WAV file is written.
func (s *Service) AudioPath(id string) string {
	return filepath.Join(s.audioDir, id+".wav")
}

func (s *Service) writeAudio(id string, clip audio.Clip) (string, error) {
	if s.audioDir == "" {
		return "", services.Wrap(services.ErrConfiguration, "studio", "write audio", "audio directory not configured", nil)
	}
	payload, err := audio.EncodeWAV(clip.Data, clip.Format)
	if err != nil {
		return "", services.Wrap(services.ErrExternalService, "studio", "write audio", "encode", err)
	}
	target := s.AudioPath(id)
	if err := fileutil.WriteFileAtomic(target, payload, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return target, nil
}

func (s *Service) removeAudio(id string) {
	if s.audioDir == "" {
		return
	}
	if err := os.Remove(s.AudioPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("remove stale audio", logging.Session(id), logging.Error(err))
	}
}

func (s *Service) lock(id string) func() {
	return s.locks.lock(id)
}

func (s *Service) publish(sess *session.Session, kind EventType, message string) {
	if sess == nil {
		return
	}
	s.events.Publish(Event{
		SessionID:   sess.ID,
		Type:        kind,
		Status:      sess.Status,
		AudioStatus: sess.AudioStatus,
		Message:     message,
	})
}
