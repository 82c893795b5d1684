package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into a 500 with the INTERNAL_ERROR body. Gin's own
// recovery handles broken connections; the panic itself is logged through zap.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Errorw("panic recovered",
			"error", recovered,
			"request_id", GetRequestID(c),
			"route", c.FullPath(),
			"method", c.Request.Method,
			"stack", string(debug.Stack()),
		)
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	})
}

// NotFound answers unknown routes in the API error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}
