package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one structured line per request. 5xx responses log at error
// level and 4xx at warn.
func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.Infow
		switch {
		case status >= http.StatusInternalServerError:
			log = logger.Errorw
		case status >= http.StatusBadRequest:
			log = logger.Warnw
		}
		log("HTTP request", requestFields(c, status, time.Since(start))...)
	}
}

func requestFields(c *gin.Context, status int, latency time.Duration) []interface{} {
	req := c.Request
	fields := []interface{}{
		"status", status,
		"method", req.Method,
		"path", req.URL.Path,
		"latency_ms", latency.Milliseconds(),
		"client_ip", c.ClientIP(),
	}
	optional := []struct {
		key, value string
	}{
		{"request_id", GetRequestID(c)},
		{"query", req.URL.RawQuery},
		{"errors", c.Errors.String()},
	}
	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, f.key, f.value)
		}
	}
	if route := c.FullPath(); route != "" && route != req.URL.Path {
		fields = append(fields, "route", route)
	}
	return fields
}
