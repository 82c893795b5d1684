// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/team/handler"
	"github.com/festy23/corpo_padel/internal/team/repository"
	"github.com/festy23/corpo_padel/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams")
	teams.POST("", h.CreateTeam)
	teams.GET("", h.ListTeams)
	teams.GET("/:id", h.GetTeam)
	teams.PUT("/:id/players", h.UpdatePlayers)
	teams.DELETE("/:id", h.DeleteTeam)
}
