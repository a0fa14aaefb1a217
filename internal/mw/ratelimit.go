package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiters hands out one token bucket per client IP.
type clientLimiters struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perSec  rate.Limit
	burst   int
}

func newClientLimiters(perSec rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		buckets: make(map[string]*rate.Limiter),
		perSec:  perSec,
		burst:   burst,
	}
}

func (cl *clientLimiters) limiter(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if l, ok := cl.buckets[ip]; ok {
		return l
	}
	l := rate.NewLimiter(cl.perSec, cl.burst)
	cl.buckets[ip] = l
	return l
}

// RateLimiter is a middleware for per-IP rate limiting.
func RateLimiter(perSec rate.Limit, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(perSec, burst)
	return func(c *gin.Context) {
		if !limiters.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
