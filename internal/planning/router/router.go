// Package router provides planning module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	matchRepository "github.com/festy23/corpo_padel/internal/match/repository"
	"github.com/festy23/corpo_padel/internal/planning/handler"
	"github.com/festy23/corpo_padel/internal/planning/service"
	"github.com/festy23/corpo_padel/pkg/clock"
)

// RegisterRoutes registers planning module routes.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	tournament config.TournamentConfig,
	clk clock.Clock,
) {
	svc := service.New(matchRepository.New(db), db, logger, tournament, clk)
	h := handler.New(svc, logger)

	events := r.Group("/events")
	events.POST("", h.CreateEvent)
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.DELETE("/:id", h.DeleteEvent)
}
