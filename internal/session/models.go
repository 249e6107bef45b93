package session

import (
	"time"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/narration"
)

// Status tracks script generation for a session.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Session is a stored brief with its script and audio state.
type Session struct {
	ID          string                `json:"id"`
	ContentType narration.ContentType `json:"contentType"`
	Language    brief.Language        `json:"language"`
	Brief       brief.Brief           `json:"brief"`
	Status      Status                `json:"status"`
	Script      string                `json:"script"`
	AudioStatus audio.Status          `json:"audioStatus"`
	Voice       brief.Voice           `json:"voice,omitempty"`
	AudioPath   string                `json:"audioPath,omitempty"`
	Error       string                `json:"error,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// HasScript reports whether the session holds a non-blank script.
func (s *Session) HasScript() bool {
	for _, r := range s.Script {
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			return true
		}
	}
	return false
}

// HasAudio reports whether a finished recording is available.
func (s *Session) HasAudio() bool {
	return s.AudioStatus == audio.StatusReady && s.AudioPath != ""
}
