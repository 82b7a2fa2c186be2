package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/integrationhub/ideaportal/handlers"
	"github.com/integrationhub/ideaportal/internal/config"
	"github.com/integrationhub/ideaportal/internal/idea/handler"
	"github.com/integrationhub/ideaportal/internal/idea/service"
	"github.com/integrationhub/ideaportal/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// newRouter assembles the HTTP surface. limiterRedis may be nil.
func newRouter(cfg *config.Config, svc *service.Service, limiterRedis *redis.Client, gatherer prometheus.Gatherer, started time.Time) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))

	var mutating []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if limiterRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			mutating = append(mutating, middleware.RedisRateLimitMiddleware(limiterRedis, cfg.Redis.KeyPrefix, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			mutating = append(mutating, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealth(r, svc, started)
	handlers.RegisterSwagger(r)
	handler.RegisterRoutes(r, svc, mutating...)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return r
}
