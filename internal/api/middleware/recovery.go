package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/utils"
)

// Recovery turns panics into the generic internal error response
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			err := utils.PanicError(recovered)
			logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
				c.Request.Method,
				c.Request.URL.Path,
				utils.GetRealIP(c),
				c.GetString(constants.ContextKeyRequestID),
				err,
				debug.Stack(),
			)
			utils.ReportError(c, err)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MessageInternalServer, nil))
		}()

		c.Next()
	}
}
