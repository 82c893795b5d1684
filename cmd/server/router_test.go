package main

import (
	"bytes"
	"encoding/json"
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
	"github.com/festy23/corpo_padel/internal/middleware"
	standingsModel "github.com/festy23/corpo_padel/internal/standings/model"
	"github.com/festy23/corpo_padel/pkg/clock"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tournament := config.TournamentConfig{MaxCourts: 4, Timezone: "UTC", MatchWindowDays: 30}
	clk := clock.Fixed(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	return newRouter(testdb.Open(t), zap.NewNop().Sugar(), tournament, clk, "")
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_TournamentFlow(t *testing.T) {
	r := testEngine(t)

	w := call(r, http.MethodPost, "/teams",
		`{"name":"Smashers","company":"Acme","player1_id":1,"player2_id":2,"pool_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(r, http.MethodPost, "/teams",
		`{"name":"Volleys","company":"Globex","player1_id":3,"player2_id":4,"pool_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/events",
		`{"date":"2025-06-12","start_time":"18:00","matches":[{"court_number":1,"team1_id":1,"team2_id":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPut, "/matches/1",
		`{"status":"COMPLETED","score_team1":"6-4, 3-6, 7-5","score_team2":"4-6, 6-3, 5-7"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, http.MethodGet, "/standings?pool_id=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var table standingsModel.StandingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	require.Len(t, table.Standings, 2)
	assert.Equal(t, "Smashers", table.Standings[0].TeamName)
	assert.Equal(t, 3, table.Standings[0].Points)
	assert.Equal(t, 1, table.Standings[0].SetDifference)
	assert.Equal(t, -1, table.Standings[1].SetDifference)

	w = call(r, http.MethodDelete, "/teams/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_Infrastructure(t *testing.T) {
	r := testEngine(t)

	w := call(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = call(r, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)

	w = call(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "corpo_padel_http_requests_total")
	assert.Contains(t, w.Body.String(), `go_sql_open_connections{db_name="corpo_padel"}`)
}
