package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/integrationhub/ideaportal/pkg/logger"
	"github.com/integrationhub/ideaportal/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

var now = time.Now

// RedisRateLimitMiddleware is a fixed-window limiter shared by every portal
// instance using the same Redis. Each client may make floor(rps*window)+burst
// requests per window; counters live under prefix+"rl:".
func RedisRateLimitMiddleware(client *redis.Client, prefix string, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int(rps*float64(windowSeconds)) + burst
	return func(c *gin.Context) {
		bucket := now().Unix() / int64(windowSeconds)
		key := fmt.Sprintf("%srl:%s:%d", prefix, clientKey(c), bucket)

		ctx := c.Request.Context()
		cnt, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Errorf("rate limit check for %s failed: %v", key, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limit check failed, please try again", "retryable": true})
			return
		}
		if cnt == 1 {
			_ = client.Expire(ctx, key, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if int(cnt) > allowedPerWindow {
			c.Header("Retry-After", fmt.Sprintf("%d", windowSeconds))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, please try again shortly", "retryable": true})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
