package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func newRouter(logger *zap.SugaredLogger, metrics *Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery(logger), Logger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}
	r.GET("/teams/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	r.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{})
	})
	r.GET("/broken", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func serve(r *gin.Engine, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		for _, value := range v {
			req.Header.Add(k, value)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	logger, _ := observedLogger()
	r := newRouter(logger, nil)

	w := serve(r, "/teams/1", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	w = serve(r, "/teams/1", http.Header{RequestIDHeader: []string{"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, "/teams/1", http.Header{"x-request-id": []string{"lower-case"}})
	assert.Equal(t, "lower-case", w.Header().Get(RequestIDHeader), "header names are case-insensitive")

	w = serve(r, "/teams/1", http.Header{RequestIDHeader: []string{strings.Repeat("a", 129)}})
	assert.Len(t, w.Header().Get(RequestIDHeader), 36, "oversized ids are replaced")
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		path  string
		level zapcore.Level
	}{
		{"/teams/1", zapcore.InfoLevel},
		{"/missing", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			logger, logs := observedLogger()
			serve(newRouter(logger, nil), tt.path, http.Header{RequestIDHeader: []string{"req-1"}})

			entries := logs.FilterMessage("HTTP request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
		})
	}
}

func TestLogger_RecordsRoute(t *testing.T) {
	logger, logs := observedLogger()
	serve(newRouter(logger, nil), "/teams/7?verbose=1", nil)

	fields := logs.FilterMessage("HTTP request").All()[0].ContextMap()
	assert.Equal(t, "/teams/:id", fields["route"])
	assert.Equal(t, "verbose=1", fields["query"])
}

func TestRecovery(t *testing.T) {
	logger, logs := observedLogger()
	w := serve(newRouter(logger, nil), "/broken", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestMetrics(t *testing.T) {
	logger, _ := observedLogger()
	r := newRouter(logger, NewMetrics())

	serve(r, "/teams/1", nil)
	serve(r, "/teams/2", nil)
	serve(r, "/nowhere", nil)

	w := serve(r, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body,
		`corpo_padel_http_requests_total{method="GET",route="/teams/:id",status="200"} 2`), body)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, "corpo_padel_http_request_duration_seconds_bucket")
}

func TestNotFound(t *testing.T) {
	logger, _ := observedLogger()
	r := newRouter(logger, nil)
	r.NoRoute(NotFound())

	w := serve(r, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"route not found"}}`, w.Body.String())
}
