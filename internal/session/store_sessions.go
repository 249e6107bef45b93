package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/narration"
	"dooze/internal/services"
)

// timestampLayout keeps a fixed fraction width so stored values sort in
// time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const sessionColumns = "id, content_type, language, brief_json, status, script, audio_status, voice, audio_path, error_message, created_at, updated_at"

// Create stores a new draft session for b.
func (s *Store) Create(ctx context.Context, b brief.Brief) (*Session, error) {
	b = b.Normalize()
	briefJSON, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal brief: %w", err)
	}
	id := uuid.NewString()
	timestamp := now()

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO sessions (
            id, content_type, language, brief_json, status, script,
            audio_status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, '', ?, ?, ?)`,
		id,
		string(b.ContentType),
		string(b.Language),
		string(briefJSON),
		StatusDraft,
		audio.StatusIdle,
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a session by identifier. A missing session is ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// List returns the newest sessions first. A limit <= 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// BeginGeneration records the brief a new script is being generated from.
// The previous script and audio are discarded.
func (s *Store) BeginGeneration(ctx context.Context, id string, b brief.Brief) (*Session, error) {
	b = b.Normalize()
	briefJSON, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal brief: %w", err)
	}
	return s.update(ctx, id,
		`UPDATE sessions
         SET content_type = ?, language = ?, brief_json = ?, status = ?, script = '',
             audio_status = ?, voice = NULL, audio_path = NULL, error_message = NULL, updated_at = ?
         WHERE id = ?`,
		string(b.ContentType),
		string(b.Language),
		string(briefJSON),
		StatusGenerating,
		audio.StatusIdle,
	)
}

// UpdateScript stores a new script and resets audio to IDLE.
func (s *Store) UpdateScript(ctx context.Context, id, script string) (*Session, error) {
	return s.update(ctx, id,
		`UPDATE sessions
         SET status = ?, script = ?, audio_status = ?, voice = NULL, audio_path = NULL,
             error_message = NULL, updated_at = ?
         WHERE id = ?`,
		StatusReady,
		script,
		audio.StatusIdle,
	)
}

// FailGeneration clears the script and records message as the session error.
func (s *Store) FailGeneration(ctx context.Context, id, message string) (*Session, error) {
	return s.update(ctx, id,
		`UPDATE sessions
         SET status = ?, script = '', audio_status = ?, voice = NULL, audio_path = NULL,
             error_message = ?, updated_at = ?
         WHERE id = ?`,
		StatusFailed,
		audio.StatusIdle,
		nullableString(message),
	)
}

// UpdateAudio records the audio state. The path is only kept while the
// status is READY or PLAYING.
func (s *Store) UpdateAudio(ctx context.Context, id string, status audio.Status, voice brief.Voice, path, message string) (*Session, error) {
	if !status.Valid() {
		return nil, services.Wrap(services.ErrValidation, "session", "update audio", fmt.Sprintf("unknown audio status %q", status), nil)
	}
	if status != audio.StatusReady && status != audio.StatusPlaying {
		path = ""
	}
	return s.update(ctx, id,
		`UPDATE sessions
         SET audio_status = ?, voice = ?, audio_path = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		status,
		nullableString(string(voice)),
		nullableString(path),
		nullableString(message),
	)
}

// Delete removes a session, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// update runs query with args followed by the update timestamp and id, then
// reloads the session.
func (s *Store) update(ctx context.Context, id, query string, args ...any) (*Session, error) {
	args = append(args, now(), id)
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, notFound(id)
	}
	return s.Get(ctx, id)
}

func notFound(id string) error {
	return services.Wrap(services.ErrNotFound, "session", "lookup", fmt.Sprintf("session %q", id), nil)
}

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id           string
		contentType  string
		language     string
		briefJSON    sql.NullString
		status       string
		script       sql.NullString
		audioStatus  string
		voice        sql.NullString
		audioPath    sql.NullString
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&contentType,
		&language,
		&briefJSON,
		&status,
		&script,
		&audioStatus,
		&voice,
		&audioPath,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	session := &Session{
		ID:          id,
		Status:      Status(status),
		Script:      script.String,
		AudioStatus: audio.ParseStatus(audioStatus),
		Voice:       brief.Voice(voice.String),
		AudioPath:   audioPath.String,
		Error:       errorMessage.String,
	}
	if briefJSON.Valid && briefJSON.String != "" {
		if err := json.Unmarshal([]byte(briefJSON.String), &session.Brief); err != nil {
			return nil, fmt.Errorf("decode brief for session %s: %w", id, err)
		}
	}
	session.ContentType = session.Brief.ContentType
	if session.ContentType == "" {
		session.ContentType = narration.ContentType(contentType)
	}
	session.Language = brief.Language(language)
	if created, err := parseTimeString(createdRaw.String); err == nil {
		session.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		session.UpdatedAt = updated
	}
	return session, nil
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
