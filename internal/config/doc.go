// Package config loads, normalizes, and validates dooze configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GEMINI_API_KEY and OPENROUTER_API_KEY, including values from a local .env
// file. The Config type centralizes every knob the CLI and API server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
