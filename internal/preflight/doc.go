// Package preflight provides readiness checks for the directories, binaries
// and model providers dooze depends on.
//
// `dooze check` runs RunAll and prints one row per Result. Optional checks
// (the audio player) warn without failing the run; Ready reports whether
// every required check passed.
package preflight
