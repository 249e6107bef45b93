// Package fileutil holds the file writes dooze needs to be crash safe:
// atomic replacement for synthesized audio and verified copies for exports.
package fileutil
