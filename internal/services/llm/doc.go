// Package llm provides an OpenRouter-compatible chat client for script
// generation.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.GenerateScript: render the brief prompt and return the model's script.
// Client.Complete / Client.CompleteJSON: send system/user prompts.
// Client.HealthCheck: verify API key and model availability.
// DecodeJSON: tolerant decoding shared with the Gemini video path.
//
// # Failure Behaviour
//
// Every request is a single attempt. Failures are tagged with services
// markers: missing or rejected credentials are ErrConfiguration, timeouts are
// ErrTimeout and everything else is ErrExternalService. An empty completion is
// an error, never an empty script.
package llm
