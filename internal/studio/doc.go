// Package studio orchestrates a narration session: generate a script from a
// brief, derive the display and speech narrations, synthesize the voice-over
// and analyze reference videos.
//
// Collaborators are single-attempt. When one fails the session records the
// localized message for the brief's language and the caller receives a
// *Failure carrying the same text. Every state change is published as an
// Event so the API can stream progress to clients.
package studio
