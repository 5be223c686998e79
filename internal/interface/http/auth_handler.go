package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
	"github.com/oksasatya/clubhouse/pkg/helpers"
	"github.com/oksasatya/clubhouse/pkg/response"
	"github.com/oksasatya/clubhouse/pkg/validation"
)

type AuthHandler struct {
	Auth     *application.AuthService
	Sessions *application.SessionManager
	Signer   *helpers.SessionSigner
	Cookies  *helpers.Manager
	Audit    *application.Auditor
	Logger   *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, sessions *application.SessionManager, signer *helpers.SessionSigner, cookies *helpers.Manager, audit *application.Auditor, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Signer: signer, Cookies: cookies, Audit: audit, Logger: logger}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req application.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	signUpCounter.Add(1)
	h.Audit.Record(c.Request.Context(), auditEntry(c, u, entity.AuditSignUp, nil))
	response.Success(c, http.StatusCreated, toUserResponse(u), "account created", nil)
}

// SignIn POST /api/auth/sign-in
// A successful sign-in always starts a fresh session id.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()

	u, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			signInCounter.Add("failure", 1)
			h.Audit.Record(ctx, auditEntry(c, &entity.User{Email: req.Email}, entity.AuditSignInFailure, nil))
			if h.Logger != nil {
				h.Logger.WithField("ip", middleware.ClientIP(c)).Info("sign-in rejected")
			}
		}
		writeError(c, h.Logger, err)
		return
	}

	if old := middleware.SessionID(c); old != "" {
		if err := h.Sessions.Unbind(ctx, old); err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("failed to drop previous session")
		}
	}
	sid := h.Sessions.NewToken()
	if err := h.Sessions.Bind(ctx, sid, u.ID); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	value, exp, err := h.Signer.Sign(sid)
	if err != nil {
		_ = h.Sessions.Unbind(ctx, sid)
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, value, exp)

	signInCounter.Add("success", 1)
	h.Audit.Record(ctx, auditEntry(c, u, entity.AuditSignInSuccess, nil))
	response.Success(c, http.StatusOK, toUserResponse(u), "signed in", map[string]any{"expires_at": exp})
}

// LogOut POST /api/auth/log-out
// Anonymous callers succeed too.
func (h *AuthHandler) LogOut(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	h.Cookies.Clear(c)
	if sid == "" {
		response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
		return
	}
	u, err := h.Sessions.Resolve(ctx, sid)
	if err != nil && h.Logger != nil {
		h.Logger.WithError(err).Debug("log-out: session user not resolved; unbinding anyway")
	}
	if err := h.Sessions.Unbind(ctx, sid); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if u != nil {
		h.Audit.Record(ctx, auditEntry(c, u, entity.AuditLogOut, nil))
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

type meResponse struct {
	Authenticated bool          `json:"authenticated"`
	Role          entity.Role   `json:"role"`
	User          *userResponse `json:"user"`
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := currentUser(c, h.Sessions, h.Logger)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, meResponse{
		Authenticated: u != nil,
		Role:          entity.RoleOf(u),
		User:          toUserResponse(u),
	}, "current identity", nil)
}
