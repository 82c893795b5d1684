// Package handler provides HTTP handlers for the standings endpoint.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/corpo_padel/internal/database/database"
	standingsModel "github.com/festy23/corpo_padel/internal/standings/model"
	"github.com/festy23/corpo_padel/internal/standings/service"
)

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// Handler handles HTTP requests for standings.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new standings handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetStandings handles GET /standings request.
// @Summary Get the standings table
// @Tags Standings
// @Produce json
// @Param pool_id query int false "Pool ID"
// @Success 200 {object} standingsModel.StandingsResponse
// @Failure 400 {object} ErrorResponse "Invalid pool_id"
// @Router /standings [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStandings(c *gin.Context) {
	var filter standingsModel.Filter
	if raw := c.Query("pool_id"); raw != "" {
		poolID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || poolID == 0 {
			errorResponse(c, "INVALID_REQUEST", "pool_id must be a positive integer", http.StatusBadRequest)
			return
		}
		id := uint(poolID)
		filter.PoolID = &id
	}

	resp, err := h.service.GetStandings(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorw("error computing standings", "error", err)
		if errors.Is(err, database.ErrStorage) {
			errorResponse(c, "STORAGE_UNAVAILABLE", "storage temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
