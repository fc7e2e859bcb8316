package middleware

import (
	"fmt"
	"net/http"
	"time"

	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewRateLimiter(client *redis.Client, log *logger.Logger) *RateLimiter {
	return &RateLimiter{rdb: client, log: log.With("middleware", "ratelimit")}
}

// Limit — фиксированное окно на действие и IP поверх INCR/EXPIRE.
// Недоступный редис не повод ронять игровые запросы: лимитер тогда
// пропускает всех и пишет warn.
func (rl *RateLimiter) Limit(action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", action, c.ClientIP())

		count, err := rl.rdb.Incr(c, key).Result()
		if err != nil {
			rl.log.Warn("rate limiter unavailable, letting request through",
				"action", action, "error", err)
			c.Next()
			return
		}

		// Первый запрос в окне — ставим время жизни ключу
		if count == 1 {
			if err := rl.rdb.Expire(c, key, window).Err(); err != nil {
				rl.log.Warn("failed to set rate limit window", "action", action, "error", err)
			}
		}

		if count > int64(limit) {
			ttl, _ := rl.rdb.TTL(c, key).Result()

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
