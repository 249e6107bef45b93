package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dooze/internal/logging"
	"dooze/internal/services"
)

const requestIDHeader = "X-Request-ID"

// authMiddleware validates bearer tokens. An empty token disables auth.
// Websocket clients that cannot set headers may pass the token as
// ?access_token=.
func authMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		provided := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			provided = strings.TrimPrefix(auth, "Bearer ")
		} else if q := c.Query("access_token"); q != "" {
			provided = q
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "missing or invalid bearer token"})
			return
		}
		c.Next()
	}
}

// requestContext tags each request with an id and logs one line when it
// completes.
func requestContext(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := strings.TrimSpace(c.GetHeader(requestIDHeader)); id != "" {
			ctx = services.WithRequestID(ctx, id)
		}
		ctx, id := services.EnsureRequestID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, id)

		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			logging.String("method", c.Request.Method),
			logging.String("route", c.FullPath()),
			logging.Int("status", status),
			logging.Duration("elapsed", time.Since(started)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, logging.String("error", c.Errors.Last().Error()))
		}
		reqLogger := logging.WithContext(ctx, logger)
		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("api request", attrs...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("api request", attrs...)
		default:
			reqLogger.Debug("api request", attrs...)
		}
	}
}
