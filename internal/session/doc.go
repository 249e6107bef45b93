// Package session persists studio sessions in SQLite.
//
// A session is one brief with its generated script and the state of its
// narration audio. The script lifecycle (draft, generating, ready, failed) and
// the audio lifecycle (IDLE through ERROR) are tracked separately; any new
// script resets audio to IDLE and forgets the previous file, so a stale
// recording never outlives the script it was made from.
//
// The schema is embedded and versioned through the schema_version table. A
// version mismatch is reported as ErrSchemaMismatch instead of migrating.
package session
