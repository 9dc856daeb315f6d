package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfolio-stats/internal/logger"
)

// DefaultReadyTimeout bounds a single readiness check against the bar store.
const DefaultReadyTimeout = 2 * time.Second

// Pinger checks that a backing store answers, e.g. storage.BarsRepository.Ping.
type Pinger func(ctx context.Context) error

// HealthStatus is the body of both probes.
type HealthStatus struct {
	Status string `json:"status" example:"ready"`
	Source string `json:"source,omitempty" example:"yfinance"`
	Error  string `json:"error,omitempty" example:"bar store unreachable"`
}

// HealthHandler serves liveness and readiness for the configured price source.
//
// Only the postgres source has a local dependency worth probing; the Yahoo
// sources are remote and checked per request, so they are always ready.
type HealthHandler struct {
	source  string
	ping    Pinger
	timeout time.Duration
}

// NewHealthHandler builds the probes for source. ping may be nil when the
// source has no backing store.
func NewHealthHandler(source string, ping Pinger) *HealthHandler {
	return &HealthHandler{source: source, ping: ping, timeout: DefaultReadyTimeout}
}

// Register mounts GET /healthz and GET /readyz.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Live)
	r.GET("/readyz", h.Ready)
}

// Live godoc
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthStatus
// @Router       /healthz [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{Status: "ok"})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Returns ready if the configured bar store (Postgres source only) is reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthStatus
// @Failure      503  {object}  HealthStatus
// @Router       /readyz [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ping == nil {
		c.JSON(http.StatusOK, HealthStatus{Status: "ready", Source: h.source})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.L().Warn().Err(err).Str("source", h.source).Msg("readiness check failed")
		c.JSON(http.StatusServiceUnavailable, HealthStatus{Status: "degraded", Source: h.source, Error: "bar store unreachable"})
		return
	}
	c.JSON(http.StatusOK, HealthStatus{Status: "ready", Source: h.source})
}
