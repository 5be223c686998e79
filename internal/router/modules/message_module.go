package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/clubhouse/internal/container"
	handlers "github.com/oksasatya/clubhouse/internal/interface/http"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
)

// MessageModule registers the board:
// GET /messages, GET /messages/search, POST /messages, DELETE /messages/:id
type MessageModule struct {
	Handler *handlers.MessageHandler
}

func NewMessageModule(h *handlers.MessageHandler) *MessageModule {
	return &MessageModule{Handler: h}
}

func (m *MessageModule) Name() string { return "messages" }

func (m *MessageModule) Register(rg *gin.RouterGroup) {
	rdb, logger := container.GetRedis(), container.GetLogger()
	postLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyBySession(), nil, logger)
	searchLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil, logger)

	msgs := rg.Group("/messages")
	msgs.GET("", m.Handler.Feed)
	msgs.GET("/search", searchLimiter, m.Handler.Search)
	msgs.POST("", postLimiter, m.Handler.Post)
	msgs.DELETE("/:id", m.Handler.Delete)
}
