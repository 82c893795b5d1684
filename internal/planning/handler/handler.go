// Package handler provides HTTP handlers for event endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchHandler "github.com/festy23/corpo_padel/internal/match/handler"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	"github.com/festy23/corpo_padel/internal/planning/service"
)

// Handler handles HTTP requests for event endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new planning handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateEvent handles POST /events request.
// @Summary Book an event of 1 to 3 matches
// @Tags Events
// @Accept json
// @Produce json
// @Param request body matchModel.CreateEventRequest true "Request"
// @Success 201 {object} matchModel.Event
// @Failure 400 {object} ErrorResponse "Invalid composition"
// @Failure 409 {object} ErrorResponse "Court already booked (SLOT_CONFLICT)"
// @Router /events [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateEvent(c *gin.Context) {
	var req matchModel.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		matchHandler.InvalidRequest(c, "invalid request body")
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		matchHandler.RespondError(c, h.logger, "error creating event", err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent handles GET /events/:id request.
// @Summary Get an event with its matches
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} matchModel.Event
// @Failure 404 {object} ErrorResponse "Event not found"
// @Router /events/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := matchHandler.PathID(c)
	if !ok {
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		matchHandler.RespondError(c, h.logger, "error getting event", err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents handles GET /events request.
// @Summary List events
// @Tags Events
// @Produce json
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} matchModel.EventsResponse
// @Router /events [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListEvents(c *gin.Context) {
	filter := matchModel.EventFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	resp, err := h.service.ListEvents(c.Request.Context(), filter)
	if err != nil {
		matchHandler.RespondError(c, h.logger, "error listing events", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteEvent handles DELETE /events/:id request.
// @Summary Delete an event whose matches are all upcoming
// @Tags Events
// @Param id path int true "Event ID"
// @Success 204
// @Failure 409 {object} ErrorResponse "Event holds played or cancelled matches (INVALID_TRANSITION)"
// @Router /events/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := matchHandler.PathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		matchHandler.RespondError(c, h.logger, "error deleting event", err)
		return
	}

	c.Status(http.StatusNoContent)
}
