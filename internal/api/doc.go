// Package api exposes the studio over HTTP with gin.
//
// Routes live under /api and return JSON. When paths.api_token is set every
// route except /healthz requires "Authorization: Bearer <token>". Errors use
// the body {"error": code, "message": text} with the status derived from the
// services error markers; collaborator failures carry the localized message
// the session recorded.
//
// GET /api/sessions/:id/events upgrades to a websocket that streams studio
// events for the session until the client disconnects.
package api
