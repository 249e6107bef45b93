// Package services defines shared utilities consumed by the studio and the
// external model integrations.
//
// Key responsibilities:
//   - Context helpers that stamp session IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent API responses.
//
// External calls wrap their failures with one of the markers so callers can
// tell validation problems from upstream outages without string matching.
package services
