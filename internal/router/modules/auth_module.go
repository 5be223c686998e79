package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/internal/container"
	handlers "github.com/oksasatya/clubhouse/internal/interface/http"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
)

// AuthModule registers account and session routes:
// POST /auth/sign-up, POST /auth/sign-in, POST /auth/log-out, GET /auth/me
type AuthModule struct {
	Handler     *handlers.AuthHandler
	SignInLimit int
	SignUpLimit int
}

func NewAuthModule(h *handlers.AuthHandler, signInLimit, signUpLimit int) *AuthModule {
	return &AuthModule{Handler: h, SignInLimit: signInLimit, SignUpLimit: signUpLimit}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb, logger := container.GetRedis(), container.GetLogger()
	signInLimiter := middleware.RateLimit(rdb, m.SignInLimit, time.Minute, middleware.KeyByIPAndPath(), nil, logger)
	signUpLimiter := middleware.RateLimit(rdb, m.SignUpLimit, time.Minute, middleware.KeyByIPAndPath(), nil, logger)

	auth := rg.Group("/auth")
	auth.POST("/sign-up", signUpLimiter, m.Handler.SignUp)
	auth.POST("/sign-in", signInLimiter, m.Handler.SignIn)
	auth.POST("/log-out", m.Handler.LogOut)
	auth.GET("/me", m.Handler.Me)
}
