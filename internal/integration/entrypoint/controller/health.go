package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthCheck
	cache    HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil cache check reports "disabled".
func NewHealthController(database, cache HealthCheck) *HealthController {
	return &HealthController{
		database: database,
		cache:    cache,
	}
}

// Check handles GET /health requests.
// The API answers 503 when the database is unreachable; the cache is informational.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Cache:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if h.database != nil && h.database() {
		response.Database = "connected"
	} else {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		response.Cache = "disconnected"
		if h.cache() {
			response.Cache = "connected"
		}
	}

	c.JSON(status, response)
}
