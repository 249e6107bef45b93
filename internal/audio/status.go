package audio

import "strings"

// Status is the lifecycle of a session's narration audio.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusGenerating Status = "GENERATING"
	StatusReady      Status = "READY"
	StatusPlaying    Status = "PLAYING"
	StatusError      Status = "ERROR"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusGenerating, StatusReady, StatusPlaying, StatusError:
		return true
	}
	return false
}

// ParseStatus reads a status case-insensitively; unknown values are idle.
func ParseStatus(value string) Status {
	s := Status(strings.ToUpper(strings.TrimSpace(value)))
	if s.Valid() {
		return s
	}
	return StatusIdle
}
