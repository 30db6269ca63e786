package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit returns a fixed-window per-client-IP limiter. State lives
// in-process; a single API instance is the deployment unit here.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		count       int
		windowStart time.Time
	}

	var mu sync.Mutex
	buckets := make(map[string]*entry)

	return func(c *gin.Context) {
		key := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if len(buckets) > 10000 {
			for k, e := range buckets {
				if now.Sub(e.windowStart) > window {
					delete(buckets, k)
				}
			}
		}

		e, ok := buckets[key]
		if !ok || now.Sub(e.windowStart) > window {
			e = &entry{windowStart: now}
			buckets[key] = e
		}
		e.count++
		count := e.count
		mu.Unlock()

		if count > requests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Try again later.",
			})
			return
		}

		c.Next()
	}
}
