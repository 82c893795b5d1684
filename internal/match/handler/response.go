package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/corpo_padel/internal/database/database"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes an error body with the given code and status.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// InvalidRequest writes a 400 INVALID_REQUEST response.
func InvalidRequest(c *gin.Context, message string) {
	errorResponse(c, "INVALID_REQUEST", message, http.StatusBadRequest)
}

var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{matchModel.ErrMatchNotFound, "NOT_FOUND", http.StatusNotFound},
	{matchModel.ErrEventNotFound, "NOT_FOUND", http.StatusNotFound},
	{teamModel.ErrTeamNotFound, "NOT_FOUND", http.StatusNotFound},
	{matchModel.ErrSlotConflict, "SLOT_CONFLICT", http.StatusConflict},
	{matchModel.ErrInvalidTransition, "INVALID_TRANSITION", http.StatusConflict},
	{matchModel.ErrInvalidScoreFormat, "INVALID_SCORE_FORMAT", http.StatusBadRequest},
	{matchModel.ErrScoreRequired, "SCORE_REQUIRED", http.StatusBadRequest},
	{matchModel.ErrScoreMismatch, "SCORE_MISMATCH", http.StatusBadRequest},
	{matchModel.ErrDuplicateCourt, "DUPLICATE_COURT", http.StatusBadRequest},
	{matchModel.ErrTeamDoubleBooked, "TEAM_DOUBLE_BOOKED", http.StatusBadRequest},
	{matchModel.ErrSelfMatch, "SELF_MATCH", http.StatusBadRequest},
	{matchModel.ErrInvalidEventSize, "INVALID_EVENT_SIZE", http.StatusBadRequest},
	{matchModel.ErrPastDate, "PAST_DATE", http.StatusBadRequest},
	{matchModel.ErrInvalidCourt, "INVALID_COURT", http.StatusBadRequest},
	{matchModel.ErrInvalidSlot, "INVALID_REQUEST", http.StatusBadRequest},
	{matchModel.ErrInvalidStatus, "INVALID_REQUEST", http.StatusBadRequest},
	{matchModel.ErrInvalidTeam, "INVALID_REQUEST", http.StatusBadRequest},
}

// RespondError maps a service error to its error code and HTTP status.
// Unexpected errors are logged with msg.
func RespondError(c *gin.Context, logger *zap.SugaredLogger, msg string, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			errorResponse(c, e.code, err.Error(), e.status)
			return
		}
	}

	if errors.Is(err, database.ErrStorage) {
		logger.Errorw(msg, "error", err)
		errorResponse(c, "STORAGE_UNAVAILABLE", "storage temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	logger.Errorw(msg, "error", err)
	errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}

// PathID parses the :id path parameter, answering 400 when it is not a
// positive integer.
func PathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		InvalidRequest(c, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		InvalidRequest(c, name+" must be a positive integer")
		return nil, false
	}
	v := uint(id)
	return &v, true
}
