// Package router provides standings module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/standings/handler"
	"github.com/festy23/corpo_padel/internal/standings/repository"
	"github.com/festy23/corpo_padel/internal/standings/service"
)

// RegisterRoutes registers standings module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	svc := service.New(repository.New(db), logger)
	h := handler.New(svc, logger)

	r.GET("/standings", h.GetStandings)
}
