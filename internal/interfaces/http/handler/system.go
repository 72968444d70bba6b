package handler

import (
	"net/http"

	"github.com/gasdepot/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		appName:     appName,
	}
}

// Health handles GET /health. It reports liveness only and never touches
// dependencies, so orchestrators do not restart the process on a database
// blip.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"service": h.appName,
	})
}

// Ready handles GET /ready and checks the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	h.Success(c, gin.H{"status": "ready"})
}
