package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/pkg/helpers"
)

const CtxSessionIDKey = "session_id"

// SessionToken reads the signed session cookie and stores the opaque session id
// under CtxSessionIDKey. A missing, forged or expired cookie leaves the caller
// anonymous; it never aborts the request.
func SessionToken(cookies *helpers.Manager, signer *helpers.SessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := cookies.Read(c); raw != "" {
			if sid, err := signer.Parse(raw); err == nil {
				c.Set(CtxSessionIDKey, sid)
			}
		}
		c.Next()
	}
}

// SessionID returns the session id stored by SessionToken, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(CtxSessionIDKey)
}
