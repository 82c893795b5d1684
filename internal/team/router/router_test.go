package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/corpo_padel/internal/database/testdb"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testdb.Open(t), zap.NewNop().Sugar())
	return r
}

func send(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTeamRoutes_Lifecycle(t *testing.T) {
	r := setupRouter(t)

	w := send(t, r, http.MethodPost, "/teams", map[string]interface{}{
		"name": "Net Rushers", "company": "Globex", "player1_id": 1, "player2_id": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created teamModel.Team
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = send(t, r, http.MethodPost, "/teams", map[string]interface{}{
		"name": "Net Rushers", "company": "Initech", "player1_id": 3, "player2_id": 4,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(t, r, http.MethodPut, "/teams/1/players", map[string]interface{}{"player1_id": 7, "player2_id": 8})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(t, r, http.MethodGet, "/teams?company=glob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list teamModel.TeamsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Teams, 1)
	assert.Equal(t, created.ID, list.Teams[0].ID)
	assert.Equal(t, uint(7), list.Teams[0].Player1ID)

	w = send(t, r, http.MethodDelete, "/teams/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = send(t, r, http.MethodGet, "/teams/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
