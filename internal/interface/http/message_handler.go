package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/pkg/response"
	"github.com/oksasatya/clubhouse/pkg/validation"
)

type MessageHandler struct {
	Messages *application.MessageService
	Sessions *application.SessionManager
	Audit    *application.Auditor
	Logger   *logrus.Logger
}

func NewMessageHandler(messages *application.MessageService, sessions *application.SessionManager, audit *application.Auditor, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Messages: messages, Sessions: sessions, Audit: audit, Logger: logger}
}

// Feed GET /api/messages
func (h *MessageHandler) Feed(c *gin.Context) {
	viewer, ok := currentUser(c, h.Sessions, h.Logger)
	if !ok {
		return
	}
	items, err := h.Messages.Feed(c.Request.Context(), viewer)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "messages", map[string]any{
		"count":       len(items),
		"viewer_role": entity.RoleOf(viewer),
	})
}

// Post POST /api/messages
func (h *MessageHandler) Post(c *gin.Context) {
	u, ok := authorizedUser(c, h.Sessions, h.Logger, application.ActionPostMessage)
	if !ok {
		return
	}
	var req application.PostMessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Messages.Post(c.Request.Context(), u, req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	messageCounter.Add("posted", 1)
	item := entity.FeedRow{
		Message:                    *m,
		AuthorSpecialMemberName:    u.SpecialMemberName,
		AuthorNonMemberDisplayName: u.NonMemberDisplayName,
	}.ForViewer(u)
	response.Success(c, http.StatusCreated, item, "message posted", nil)
}

// Delete DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	u, ok := currentUser(c, h.Sessions, h.Logger)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Messages.Delete(c.Request.Context(), u, id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	messageCounter.Add("deleted", 1)
	h.Audit.Record(c.Request.Context(), auditEntry(c, u, entity.AuditMessageDeleted, map[string]any{"message_id": id}))
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true, "id": id}, "message deleted", nil)
}

// Search GET /api/messages/search?q=&size=
func (h *MessageHandler) Search(c *gin.Context) {
	viewer, ok := currentUser(c, h.Sessions, h.Logger)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Messages.Search(c.Request.Context(), viewer, c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "search results", map[string]any{"count": len(items)})
}
