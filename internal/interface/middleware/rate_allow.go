package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/pkg/response"
)

// AllowFunc reports whether a request is exempt from a limit or allowed through a guard.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP allows loopback and RFC 1918 / RFC 4193 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ClientIP(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// OnlyIf answers 404 for requests allow rejects, hiding the route.
func OnlyIf(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow != nil && !allow(c) {
			response.Abort(c, http.StatusNotFound, "not found", nil)
			return
		}
		c.Next()
	}
}
