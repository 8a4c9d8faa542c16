// ratelimit.go implements per-session rate limiting using a token bucket.
//
// How token bucket works:
// - Each session gets a "bucket" with N tokens (N = requests per hour)
// - Each request consumes 1 token
// - Tokens refill at a steady rate (N tokens per hour)
// - If the bucket is empty, the request is rejected with 429 Too Many Requests
//
// This smooths out burst traffic better than a fixed hourly window. A
// rate-limited request is rejected before any quota accounting — it never
// consumes a trial question.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BalasaitejaG/Pdf-AI/internal/models"
)

// RateLimiter tracks request rates per session.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	perHour int
}

// bucket tracks the token state for a single session.
type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// allowResult carries the check outcome plus header information.
type allowResult struct {
	allowed   bool
	remaining float64
	limit     float64
}

// NewRateLimiter creates a rate limiter allowing perHour requests per session.
func NewRateLimiter(perHour int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		perHour: perHour,
	}

	// Start background cleanup goroutine
	go rl.cleanup()

	return rl
}

// RateLimit returns Gin middleware that enforces the per-session limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := GetSessionID(c)
		if sessionID == "" {
			// No session = nothing to key on (session middleware handles rejection)
			c.Next()
			return
		}

		result := rl.allow(sessionID)
		if !result.allowed {
			// Add headers even for rejected requests so clients know their limits
			c.Header("X-RateLimit-Limit", formatFloat(result.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Rate limit reached. Please wait a few minutes before trying again.",
				Code:    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", formatFloat(result.limit))
		c.Header("X-RateLimit-Remaining", formatFloat(result.remaining))

		c.Next()
	}
}

// allow checks if a request should proceed, consuming a token if so.
// Returns the result atomically so the headers match the decision.
func (rl *RateLimiter) allow(sessionID string) allowResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[sessionID]
	if !exists {
		b = &bucket{
			tokens:     float64(rl.perHour),
			maxTokens:  float64(rl.perHour),
			refillRate: float64(rl.perHour) / 3600.0,
			lastRefill: time.Now(),
		}
		rl.buckets[sessionID] = b
	}

	// Refill tokens based on elapsed time
	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1.0 {
		return allowResult{allowed: false, remaining: 0, limit: b.maxTokens}
	}

	b.tokens--
	return allowResult{allowed: true, remaining: b.tokens, limit: b.maxTokens}
}

// cleanup periodically removes stale buckets to prevent memory leaks.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for id, b := range rl.buckets {
			// Remove buckets that haven't been used in over an hour
			if now.Sub(b.lastRefill) > time.Hour {
				delete(rl.buckets, id)
			}
		}
		rl.mu.Unlock()
	}
}

// formatFloat converts a float to a string for headers.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.0f", f)
}
