// Package main hosts the dooze CLI entrypoint and command graph.
//
// The Cobra command tree exposes the narration engine directly (narrate,
// rules), drives the studio against the local session store (generate,
// analyze, speak, sessions), runs the HTTP API (serve) and scaffolds
// configuration. Commands that only clean text skip config loading so they
// work on a fresh machine.
package main
