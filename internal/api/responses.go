package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dooze/internal/narration"
	"dooze/internal/services"
	"dooze/internal/session"
	"dooze/internal/studio"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SessionResponse is a session with the narrations derived from its script.
type SessionResponse struct {
	*session.Session
	Narration narration.Result `json:"narration"`
}

// SessionListResponse wraps a session listing.
type SessionListResponse struct {
	Sessions []*session.Session `json:"sessions"`
}

// RulesResponse lists the keyword tables for a content type.
type RulesResponse struct {
	ContentType narration.ContentType `json:"contentType"`
	Display     ruleSetJSON           `json:"display"`
	Speech      ruleSetJSON           `json:"speech"`
}

type ruleSetJSON struct {
	RemoveLine []string `json:"removeLine"`
	StripLabel []string `json:"stripLabel"`
}

func toRuleSetJSON(rules narration.RuleSet) ruleSetJSON {
	return ruleSetJSON{RemoveLine: rules.RemoveLine, StripLabel: rules.StripLabel}
}

func newSessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{Session: sess, Narration: studio.Narration(sess)}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation):
		return "validation"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrConfiguration):
		return "configuration"
	case errors.Is(err, services.ErrTimeout):
		return "timeout"
	case errors.Is(err, services.ErrExternalService):
		return "external_service"
	default:
		return "internal"
	}
}

// writeError responds with the status for err. Studio failures expose their
// localized message; other errors expose their text except for internal ones.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	resp := ErrorResponse{Error: errorCode(err), Message: err.Error()}
	var failure *studio.Failure
	if errors.As(err, &failure) {
		resp.Message = failure.Message
	} else if status == http.StatusInternalServerError {
		resp.Message = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}
