package middleware

import (
	"net/http"
	"runtime/debug"

	"agentai-website-api/internal/delivery/http/response"
	"agentai-website-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic JSON 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("panic recovered",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
		response.AbortWithError(c, http.StatusInternalServerError, msgUnexpected)
	})
}
