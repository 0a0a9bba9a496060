package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/constants"
	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/utils"
)

// LimitRequestBody reads the request body once, up to maxBytes, and stores
// the raw bytes in the context under ContextKeyRawBody. Larger bodies are
// rejected with 413 before any handler runs.
func LimitRequestBody(maxBytes int64, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Set(constants.ContextKeyRawBody, []byte{})
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			utils.HandleAPIError(c, logger, errors.New("content length exceeds limit"), http.StatusRequestEntityTooLarge, common.MessageTooLarge)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				utils.HandleAPIError(c, logger, err, http.StatusRequestEntityTooLarge, common.MessageTooLarge)
				return
			}
			utils.HandleAPIError(c, logger, err, http.StatusBadRequest, common.MessageBadRequest)
			return
		}

		c.Set(constants.ContextKeyRawBody, body)
		c.Next()
	}
}

// RawBody returns the bytes stored by LimitRequestBody, reading the request
// body directly when the middleware did not run.
func RawBody(c *gin.Context) ([]byte, error) {
	if raw, ok := c.Get(constants.ContextKeyRawBody); ok {
		if body, ok := raw.([]byte); ok {
			return body, nil
		}
	}
	if c.Request.Body == nil {
		return []byte{}, nil
	}
	return io.ReadAll(c.Request.Body)
}
