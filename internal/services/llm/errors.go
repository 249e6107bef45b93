package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"dooze/internal/services"
)

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, SummarizeSnippet(e.Body))
}

type emptyContentError struct {
	FinishReason string
	Refusal      string
	Snippet      string
}

func (e *emptyContentError) Error() string {
	return fmt.Sprintf("empty content (finish_reason=%q, refusal=%q, response_snippet=%s)",
		e.FinishReason, e.Refusal, e.Snippet)
}

// classify tags a transport or status failure with the matching service marker.
func classify(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, component, op, "", err)
	}
	var status *statusError
	if errors.As(err, &status) {
		switch status.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return services.Wrap(services.ErrConfiguration, component, op, "credentials rejected", err)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return services.Wrap(services.ErrTimeout, component, op, "", err)
		}
	}
	return services.Wrap(services.ErrExternalService, component, op, "", err)
}
