package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping() error {
	return p.err
}

func newSystemTestRouter(db Pinger) *gin.Engine {
	h := NewSystemHandler(db, zap.NewNop())
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestSystemHandler_Health_OK(t *testing.T) {
	router := newSystemTestRouter(stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.NotEmpty(t, resp.Uptime)
}

func TestSystemHandler_Health_DatabaseDown(t *testing.T) {
	router := newSystemTestRouter(stubPinger{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Database)
}
