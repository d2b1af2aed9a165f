package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis. Quiz
// generation burns oracle quota, so the start endpoint gets a much
// tighter budget than submission.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(addr, password string) (*RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RateLimiter{client: client}, nil
}

func (rl *RateLimiter) Close() error {
	if rl == nil || rl.client == nil {
		return nil
	}
	return rl.client.Close()
}

// Limit returns a middleware allowing max requests per window per client
// IP for the named scope. A nil limiter is a no-op so the service runs
// without Redis. Redis outages fail open: losing rate limiting is better
// than losing the endpoint.
func (rl *RateLimiter) Limit(scope string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
		count, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(c.Request.Context(), key, window)
		}

		if count > int64(max) {
			log.Printf("rate limit exceeded for IP %s on %s", c.ClientIP(), scope)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
