// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/database/database"
	"github.com/festy23/corpo_padel/internal/database/migrate"
)

// Handler handles health check requests.
type Handler struct {
	db            *gorm.DB
	logger        *zap.SugaredLogger
	timeout       time.Duration
	migrationsDir string
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// WithMigrations makes the check report the schema version found in dir.
func (h *Handler) WithMigrations(dir string) *Handler {
	h.migrationsDir = dir
	return h
}

// Response represents health check response.
type Response struct {
	Status        string `json:"status"`
	OpenConns     int    `json:"open_connections"`
	InUse         int    `json:"in_use"`
	SchemaVersion *uint  `json:"schema_version,omitempty"`
	SchemaDirty   bool   `json:"schema_dirty,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
		return
	}

	resp := Response{Status: "ok"}
	if stats, err := database.GetStats(h.db); err == nil {
		resp.OpenConns = stats.OpenConnections
		resp.InUse = stats.InUse
	}

	if h.migrationsDir != "" {
		version, dirty, err := migrate.Version(h.db, h.migrationsDir)
		if err != nil {
			h.logger.Warnw("schema version unavailable", "error", err)
		} else {
			resp.SchemaVersion = &version
			resp.SchemaDirty = dirty
			if dirty {
				resp.Status = "degraded"
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
