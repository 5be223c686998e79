package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/pkg/response"
	"github.com/oksasatya/clubhouse/pkg/validation"
)

const msgIncorrectSecret = "Incorrect secret. Please try again."

type SecretHandler struct {
	Escalation *application.EscalationService
	Sessions   *application.SessionManager
	Audit      *application.Auditor
	Logger     *logrus.Logger
}

func NewSecretHandler(esc *application.EscalationService, sessions *application.SessionManager, audit *application.Auditor, logger *logrus.Logger) *SecretHandler {
	return &SecretHandler{Escalation: esc, Sessions: sessions, Audit: audit, Logger: logger}
}

// the secret is compared verbatim, so no trimming and no binding rules
type secretRequest struct {
	Secret string `json:"secret"`
}

type escalationResponse struct {
	Outcome          string      `json:"outcome"`
	Role             entity.Role `json:"role"`
	Admin            bool        `json:"admin"`
	MembershipStatus bool        `json:"membership_status"`
}

// AdminJoin POST /api/auth/admin-join
func (h *SecretHandler) AdminJoin(c *gin.Context) { h.attempt(c, application.ScopeAdminOnly) }

// Secret POST /api/secret
func (h *SecretHandler) Secret(c *gin.Context) { h.attempt(c, application.ScopeUnified) }

func (h *SecretHandler) attempt(c *gin.Context, scope application.EscalationScope) {
	u, ok := authorizedUser(c, h.Sessions, h.Logger, application.ActionEscalate)
	if !ok {
		return
	}
	var req secretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()

	outcome, err := h.Escalation.Attempt(ctx, u, req.Secret, scope)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	escalationCounter.Add(scope.String()+":"+outcome.String(), 1)
	h.Audit.Record(ctx, auditEntry(c, u, entity.AuditEscalation, map[string]any{
		"scope":   scope.String(),
		"outcome": outcome.String(),
	}))

	flags := u.Flags()
	switch outcome {
	case application.OutcomeRejected:
		response.Error[any](c, http.StatusUnprocessableEntity, msgIncorrectSecret, nil)
		return
	case application.OutcomeAdminGranted:
		flags.Admin = true
		if scope == application.ScopeUnified {
			flags.MembershipStatus = true
		}
	case application.OutcomeMemberGranted:
		flags.MembershipStatus = true
	}
	granted := *u
	granted.Admin, granted.MembershipStatus = flags.Admin, flags.MembershipStatus
	response.Success(c, http.StatusOK, escalationResponse{
		Outcome:          outcome.String(),
		Role:             entity.RoleOf(&granted),
		Admin:            flags.Admin,
		MembershipStatus: flags.MembershipStatus,
	}, "access granted", nil)
}
