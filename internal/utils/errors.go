package utils

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
)

// HandleAPIError is a utility function for consistent error handling across the API.
// The error itself only reaches the log and, for server errors, Sentry. The
// response body carries the message alone.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	if logger != nil {
		logger.LogHTTPError(
			c.Request.Method,
			c.Request.URL.Path,
			GetRealIP(c),
			status,
			message,
			err,
		)
	}

	if status >= http.StatusInternalServerError {
		ReportError(c, err)
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message, nil))
}

// ReportError sends an error to Sentry when it is configured. Without a DSN
// the SDK has no client and this is a no-op.
func ReportError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(c.Request)
	if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
		hub.Scope().SetTag("request_id", requestID)
	}
	hub.CaptureException(err)
}

// PanicError turns a recovered panic value into an error
func PanicError(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", recovered)
}
