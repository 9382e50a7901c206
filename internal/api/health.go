package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK) reporting the deployment region.
//   - /readyz: Readiness probe (depends on record store connectivity).
type HealthHandler struct {
	storePing func(ctx context.Context) error // Function to check record store connectivity
	region    string
}

// NewHealthHandler constructs a HealthHandler with the provided storePing function.
//
// Parameters:
//   - storePing (func(context.Context) error): A function used to check if the record store is reachable.
//     Typically, this is StockRepository.Ping.
//   - region (string): Deployment region reported by /healthz.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(storePing func(ctx context.Context) error, region string) *HealthHandler {
	return &HealthHandler{storePing: storePing, region: region}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if storePing succeeds, 503 if the store is not reachable.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "region": h.region})
	})

	// Readiness probe (checks store connection)
	// @Summary      Readiness probe
	// @Description  Returns ready if the record store is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.storePing != nil && h.storePing(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
