package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows credentialed browser calls from origins. An empty list returns
// ok=false: cors.New rejects a config with every origin disabled, so the
// caller skips the middleware and browsers fall back to same-origin.
func CORS(origins []string) (mw gin.HandlerFunc, ok bool) {
	if len(origins) == 0 {
		return nil, false
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}), true
}
