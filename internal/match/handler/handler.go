// Package handler provides HTTP handlers for match endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	"github.com/festy23/corpo_padel/internal/match/service"
)

// Handler handles HTTP requests for match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new match handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateMatch handles POST /matches request.
// @Summary Book a single match
// @Tags Matches
// @Accept json
// @Produce json
// @Param request body matchModel.CreateMatchRequest true "Request"
// @Success 201 {object} matchModel.Match
// @Failure 400 {object} ErrorResponse "Invalid booking"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Failure 409 {object} ErrorResponse "Court already booked (SLOT_CONFLICT)"
// @Router /matches [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateMatch(c *gin.Context) {
	var req matchModel.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidRequest(c, "invalid request body")
		return
	}

	match, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, h.logger, "error creating match", err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatch handles GET /matches/:id request.
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} matchModel.Match
// @Failure 404 {object} ErrorResponse "Match not found"
// @Router /matches/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMatch(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	match, err := h.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		RespondError(c, h.logger, "error getting match", err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// ListMatches handles GET /matches request.
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param start_date query string false "First day, YYYY-MM-DD (default today)"
// @Param end_date query string false "Last day, YYYY-MM-DD (default start plus window)"
// @Param pool_id query int false "Pool ID"
// @Param team_id query int false "Team ID"
// @Param status query string false "UPCOMING, COMPLETED or CANCELLED"
// @Param company query string false "Company name fragment"
// @Success 200 {object} matchModel.MatchesResponse
// @Router /matches [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListMatches(c *gin.Context) {
	filter := matchModel.ListFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Company:   c.Query("company"),
	}

	var ok bool
	if filter.PoolID, ok = queryID(c, "pool_id"); !ok {
		return
	}
	if filter.TeamID, ok = queryID(c, "team_id"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := matchModel.Status(raw)
		filter.Status = &status
	}

	resp, err := h.service.ListMatches(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, h.logger, "error listing matches", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMatch handles PUT /matches/:id request.
// @Summary Move a match, change its status or record its scores
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body matchModel.UpdateMatchRequest true "Request"
// @Success 200 {object} matchModel.Match
// @Failure 400 {object} ErrorResponse "Invalid score or slot"
// @Failure 409 {object} ErrorResponse "SLOT_CONFLICT or INVALID_TRANSITION"
// @Router /matches/{id} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateMatch(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	var req matchModel.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidRequest(c, "invalid request body")
		return
	}

	match, err := h.service.UpdateMatch(c.Request.Context(), id, &req)
	if err != nil {
		RespondError(c, h.logger, "error updating match", err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch handles DELETE /matches/:id request.
// @Summary Delete an upcoming match
// @Tags Matches
// @Param id path int true "Match ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Match is not upcoming (INVALID_TRANSITION)"
// @Router /matches/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteMatch(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMatch(c.Request.Context(), id); err != nil {
		RespondError(c, h.logger, "error deleting match", err)
		return
	}

	c.Status(http.StatusNoContent)
}
