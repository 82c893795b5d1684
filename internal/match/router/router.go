// Package router provides match module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	"github.com/festy23/corpo_padel/internal/match/handler"
	"github.com/festy23/corpo_padel/internal/match/repository"
	"github.com/festy23/corpo_padel/internal/match/service"
	planningService "github.com/festy23/corpo_padel/internal/planning/service"
	"github.com/festy23/corpo_padel/pkg/clock"
)

// RegisterRoutes registers match module routes.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	tournament config.TournamentConfig,
	clk clock.Clock,
) {
	repo := repository.New(db)
	events := planningService.New(repo, db, logger, tournament, clk)
	svc := service.New(repo, events, db, logger, tournament, clk)
	h := handler.New(svc, logger)

	matches := r.Group("/matches")
	matches.POST("", h.CreateMatch)
	matches.GET("", h.ListMatches)
	matches.GET("/:id", h.GetMatch)
	matches.PUT("/:id", h.UpdateMatch)
	matches.DELETE("/:id", h.DeleteMatch)
}
