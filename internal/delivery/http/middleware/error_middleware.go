package middleware

import (
	"errors"
	"net/http"

	"agentai-website-api/internal/delivery/http/response"
	"agentai-website-api/pkg/apperror"
	"agentai-website-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgUnexpected = "Something went wrong"

// ErrorHandler renders the last error a handler attached with c.Error.
// Causes are logged here and never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed",
					"request_id", requestID,
					"status", appErr.Code,
					"path", c.FullPath(),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("unhandled error",
			"request_id", requestID,
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, msgUnexpected)
	}
}
