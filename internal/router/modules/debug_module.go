package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/internal/container"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
)

type DebugModule struct {
	// PrivateOnly hides the endpoint from public addresses.
	PrivateOnly bool
}

func NewDebugModule(privateOnly bool) *DebugModule { return &DebugModule{PrivateOnly: privateOnly} }

func (m *DebugModule) Name() string { return "debug" }

// Register exposes expvar counters, rate-limited per IP. Private addresses
// (internal scrapers) skip the limiter.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	chain := []gin.HandlerFunc{}
	if m.PrivateOnly {
		chain = append(chain, middleware.OnlyIf(middleware.AllowPrivateIP()))
	}
	chain = append(chain,
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP(), container.GetLogger()),
		gin.WrapH(expvar.Handler()),
	)
	rg.GET("/debug/vars", chain...)
}
