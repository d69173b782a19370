package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/fplmate/pkg/utils"
)

// RateLimit caps the request rate of the routes it guards. Every request
// re-reads the season from disk, so the recommendation route is throttled
// with a single shared token bucket. A non-positive rate disables the limit.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	limiter := rate.NewLimiter(limit, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			utils.SendTooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
