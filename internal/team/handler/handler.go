// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/corpo_padel/internal/database/database"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
	"github.com/festy23/corpo_padel/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams request.
// @Summary Register a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} teamModel.Team
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} ErrorResponse "Team name taken (TEAM_EXISTS)"
// @Router /teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "error creating team", err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeam handles GET /teams/:id request.
// @Summary Get a team
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} teamModel.Team
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /teams/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "error getting team", err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// ListTeams handles GET /teams request.
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param pool_id query int false "Pool ID"
// @Param company query string false "Company name fragment"
// @Success 200 {object} teamModel.TeamsResponse
// @Router /teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	filter := teamModel.ListFilter{Company: c.Query("company")}
	if raw := c.Query("pool_id"); raw != "" {
		poolID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "pool_id must be a positive integer", http.StatusBadRequest)
			return
		}
		id := uint(poolID)
		filter.PoolID = &id
	}

	resp, err := h.service.ListTeams(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, "error listing teams", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePlayers handles PUT /teams/:id/players request.
// @Summary Replace the players of a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body teamModel.UpdatePlayersRequest true "Request"
// @Success 200 {object} teamModel.Team
// @Failure 409 {object} ErrorResponse "Team has active matches (TEAM_LOCKED)"
// @Router /teams/{id}/players [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdatePlayers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req teamModel.UpdatePlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.service.UpdatePlayers(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, "error updating team players", err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /teams/:id request.
// @Summary Delete a team
// @Tags Teams
// @Param id path int true "Team ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Team has active matches (TEAM_LOCKED)"
// @Router /teams/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), id); err != nil {
		h.handleError(c, "error deleting team", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, err.Error())
	case errors.Is(err, teamModel.ErrTeamExists):
		errorResponse(c, "TEAM_EXISTS", err.Error(), http.StatusConflict)
	case errors.Is(err, teamModel.ErrTeamLocked):
		errorResponse(c, "TEAM_LOCKED", err.Error(), http.StatusConflict)
	case errors.Is(err, teamModel.ErrInvalidTeamName),
		errors.Is(err, teamModel.ErrInvalidCompany),
		errors.Is(err, teamModel.ErrSamePlayer):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, database.ErrStorage):
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "STORAGE_UNAVAILABLE", "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
