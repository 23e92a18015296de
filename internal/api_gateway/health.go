package api_gateway

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health endpoint probes. *persistence.PostgresDB
// and *persistence.MongoDB satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler reports 503 when any dependency is unreachable, naming each one.
func healthHandler(logger *slog.Logger, checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, name := range slices.Sorted(maps.Keys(checks)) {
			if err := checks[name].Ping(ctx); err != nil {
				logger.Warn("Health check failed", "dependency", name, "error", err)
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}

		body := gin.H{"status": "ok", "timestamp": time.Now().UTC()}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
