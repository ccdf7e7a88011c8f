package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seefood/backend/internal/domain"
	"github.com/seefood/backend/internal/pkg/logger"
)

const sessionKey = "session"

// SessionMiddleware builds the request's identity from the gateway-injected
// headers. Requests without them proceed as anonymous; handlers that need a
// signed-in user reject those themselves.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, domain.Session{
			UserID: c.GetHeader("X-User-ID"),
			Email:  c.GetHeader("X-User-Email"),
		})
		c.Next()
	}
}

// sessionFrom returns the session set by SessionMiddleware, or an anonymous
// session when the middleware did not run.
func sessionFrom(c *gin.Context) domain.Session {
	if value, exists := c.Get(sessionKey); exists {
		if session, ok := value.(domain.Session); ok {
			return session
		}
	}
	return domain.Session{}
}

// RateLimitMiddleware enforces a per-client-IP request rate using token
// buckets. Limiters are kept per IP and never evicted; fronting proxies
// keep the cardinality small.
func RateLimitMiddleware(requestsPerMinute int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), requestsPerMinute)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// LoggerMiddleware logs each request with its latency and request id.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestid.Get(c)),
		)
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
