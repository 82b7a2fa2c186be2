package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/integrationhub/ideaportal/pkg/logger"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

// RegisterHealth registers liveness and readiness endpoints.
// - GET /health -> 200 while the process serves requests
// - GET /ready  -> 200 when the idea store answers a ping, 503 otherwise
func RegisterHealth(r gin.IRouter, store Pinger, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		uptime := time.Since(started).Round(time.Second).String()
		if err := store.Ping(ctx); err != nil {
			logger.Warnf("readiness: store unavailable: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"store": false}, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": gin.H{"store": true}, "uptime": uptime})
	})
}
