package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"

	"github.com/veritrace/veritrace/internal/adapter"
	"github.com/veritrace/veritrace/internal/logger"
)

// errCodeRateLimited sits outside the 18xxx domain taxonomy; scan clients
// back off on it rather than showing a failure screen.
const errCodeRateLimited = 42900

// RateLimit returns a gin middleware enforcing a per-client-IP sliding
// window over redis. Meant for the public scan/read endpoints; a redis
// outage fails open because availability of scans beats strictness here.
func RateLimit(limiter adapter.RedisRateLimiter, requestsPerMinute int) gin.HandlerFunc {
	limit := redis_rate.PerMinute(requestsPerMinute)

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("client_ip", c.ClientIP()),
			)
			c.Next()
			return
		}

		if res.Allowed == 0 {
			c.Header("Retry-After", res.RetryAfter.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    errCodeRateLimited,
					"message": "Too many requests",
				},
			})
			return
		}

		c.Next()
	}
}
