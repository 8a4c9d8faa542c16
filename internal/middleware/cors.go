// cors.go configures Cross-Origin Resource Sharing (CORS).
//
// Needed when a separately-hosted frontend talks to this API from another
// origin. The embedded UI is same-origin and doesn't care, but browsers
// block cross-origin requests without these headers.
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns configured CORS middleware.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Length"},
		AllowCredentials: true, // the session cookie must travel
		MaxAge:           12 * time.Hour,
	})
}
