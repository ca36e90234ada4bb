package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	health HealthChecker
}

func NewHealthHandler(health HealthChecker) *HealthHandler {
	return &HealthHandler{health: health}
}

// HealthResponse - состояние API для индикатора
type HealthResponse struct {
	Up        bool   `json:"up"`
	LatencyMs int64  `json:"latency_ms"`
	CheckedAt string `json:"checked_at"`
	Message   string `json:"message,omitempty"`
}

// GetHealth godoc
// @Summary Upstream health
// @Description Reports whether the irrigation API answers GET /api/health. The result is cached for a few seconds.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) GetHealth(ctx *gin.Context) {
	result := h.health.Check(ctx.Request.Context())

	status := http.StatusOK
	if !result.Up {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, HealthResponse{
		Up:        result.Up,
		LatencyMs: result.Latency.Milliseconds(),
		CheckedAt: result.CheckedAt.UTC().Format(time.RFC3339),
		Message:   result.Message,
	})
}
