package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the database answers
type Pinger interface {
	Ping() error
}

// SystemHandler serves liveness endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{logger: logger},
		db:          db,
		startTime:   time.Now(),
	}
}

// RegisterRoutes registers the liveness routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse reports service and database status
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Health answers 200 while the database is reachable
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	}

	if err := h.db.Ping(); err != nil {
		h.logger.Error("database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
