package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	pinger    func() error
}

// NewSystemHandler creates a new system handler. pinger checks the database
// connection and may be nil.
func NewSystemHandler(pinger func() error) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		pinger:    pinger,
	}
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	GoVersion string `json:"go_version"`
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Status:    "degraded",
				Uptime:    time.Since(h.startTime).Round(time.Second).String(),
				GoVersion: runtime.Version(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
	})
}

// Ping answers liveness probes
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
