package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/utils"
)

// RequestLogger writes one line per request. The logger decides whether
// request lines are enabled (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
