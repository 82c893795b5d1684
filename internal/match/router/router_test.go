package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/corpo_padel/internal/config"
	"github.com/festy23/corpo_padel/internal/database/testdb"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	"github.com/festy23/corpo_padel/pkg/clock"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testdb.Open(t)
	for i := 1; i <= 4; i++ {
		require.NoError(t, db.Exec(
			"INSERT INTO teams (name, company, player1_id, player2_id) VALUES (?, ?, ?, ?)",
			fmt.Sprintf("team-%d", i), "Acme", 2*i, 2*i+1,
		).Error)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	tournament := config.TournamentConfig{MaxCourts: 10, Timezone: "UTC", MatchWindowDays: 30}
	RegisterRoutes(r, db, zap.NewNop().Sugar(), tournament, clock.Fixed(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)))
	return r
}

func send(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMatchRoutes_ScoreLifecycle(t *testing.T) {
	r := setupRouter(t)

	w := send(t, r, http.MethodPost, "/matches",
		`{"date":"2025-06-20","start_time":"18:00","court_number":1,"team1_id":1,"team2_id":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created matchModel.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = send(t, r, http.MethodPost, "/matches",
		`{"date":"2025-06-20","start_time":"18:00","court_number":1,"team1_id":3,"team2_id":4}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	path := fmt.Sprintf("/matches/%d", created.ID)
	w = send(t, r, http.MethodPut, path, `{"status":"COMPLETED","score_team1":"6-4, 3-6, 7-5"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(t, r, http.MethodPut, path,
		`{"status":"COMPLETED","score_team1":"6-4, 3-6, 7-5","score_team2":"4-6, 6-3, 5-7"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(t, r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got matchModel.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.ScoreTeam1)
	assert.Equal(t, "6-4, 3-6, 7-5", *got.ScoreTeam1)

	w = send(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(t, r, http.MethodGet, "/matches?status=COMPLETED", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list matchModel.MatchesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
}
