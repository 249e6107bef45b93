// Package audio holds the narration audio primitives: the WAV container the
// studio writes, a PCM decoder for duration and level inspection, and a
// Player that owns at most one playback session at a time.
package audio
