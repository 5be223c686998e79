package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/internal/container"
	handlers "github.com/oksasatya/clubhouse/internal/interface/http"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
)

// SecretModule registers the two escalation entry points. Both share one
// per-session budget so guessing cannot alternate between them.
type SecretModule struct {
	Handler *handlers.SecretHandler
	Limit   int
}

func NewSecretModule(h *handlers.SecretHandler, limit int) *SecretModule {
	return &SecretModule{Handler: h, Limit: limit}
}

func (m *SecretModule) Name() string { return "secret" }

func (m *SecretModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), m.Limit, time.Minute, secretKey, nil, container.GetLogger())

	rg.POST("/auth/admin-join", limiter, m.Handler.AdminJoin)
	rg.POST("/secret", limiter, m.Handler.Secret)
}

func secretKey(c *gin.Context) string {
	if sid := middleware.SessionID(c); sid != "" {
		return "clubhouse:rl:secret:sid:" + sid
	}
	return "clubhouse:rl:secret:ip:" + middleware.ClientIP(c)
}
