package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	"github.com/festy23/corpo_padel/internal/database/pool"
	"github.com/festy23/corpo_padel/internal/health"
	matchRouter "github.com/festy23/corpo_padel/internal/match/router"
	"github.com/festy23/corpo_padel/internal/middleware"
	planningRouter "github.com/festy23/corpo_padel/internal/planning/router"
	standingsRouter "github.com/festy23/corpo_padel/internal/standings/router"
	teamRouter "github.com/festy23/corpo_padel/internal/team/router"
	"github.com/festy23/corpo_padel/pkg/clock"
)

// newRouter assembles the engine with middleware and every module's routes.
// An empty migrationsDir leaves the schema version out of /health.
func newRouter(
	db *gorm.DB,
	logger *zap.SugaredLogger,
	tournament config.TournamentConfig,
	clk clock.Clock,
	migrationsDir string,
) *gin.Engine {
	metrics := middleware.NewMetrics()
	if collector, err := pool.Collector(db, "corpo_padel"); err == nil {
		metrics.Registry().MustRegister(collector)
	} else {
		logger.Warnw("database pool metrics disabled", "error", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Middleware())

	healthHandler := health.New(db, logger)
	if migrationsDir != "" {
		healthHandler.WithMigrations(migrationsDir)
	}
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", metrics.Handler())

	teamRouter.RegisterRoutes(r, db, logger)
	matchRouter.RegisterRoutes(r, db, logger, tournament, clk)
	planningRouter.RegisterRoutes(r, db, logger, tournament, clk)
	standingsRouter.RegisterRoutes(r, db, logger)

	r.NoRoute(middleware.NotFound())

	return r
}
