package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
)

// currentUser resolves the caller from the session id extracted by the
// SessionToken middleware. ok is false when an error response was written.
func currentUser(c *gin.Context, sessions *application.SessionManager, logger *logrus.Logger) (u *entity.User, ok bool) {
	u, err := sessions.Resolve(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeError(c, logger, err)
		return nil, false
	}
	return u, true
}

// authorizedUser resolves the caller and applies the guard for action before
// the request body is read, so anonymous callers get 401 whatever they sent.
func authorizedUser(c *gin.Context, sessions *application.SessionManager, logger *logrus.Logger, action application.Action) (*entity.User, bool) {
	u, ok := currentUser(c, sessions, logger)
	if !ok {
		return nil, false
	}
	if err := application.Authorize(u, action); err != nil {
		writeError(c, logger, err)
		return nil, false
	}
	return u, true
}

func auditEntry(c *gin.Context, u *entity.User, action string, md map[string]any) entity.AuditEntry {
	e := entity.AuditEntry{
		Action:    action,
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Metadata:  md,
	}
	if u != nil {
		e.UserID = u.ID
		e.Email = u.Email
	}
	return e
}

type userResponse struct {
	ID                   string      `json:"id"`
	FirstName            string      `json:"first_name"`
	LastName             string      `json:"last_name"`
	Email                string      `json:"email"`
	SpecialMemberName    string      `json:"special_member_name,omitempty"`
	NonMemberDisplayName string      `json:"non_member_display_name"`
	Admin                bool        `json:"admin"`
	MembershipStatus     bool        `json:"membership_status"`
	Role                 entity.Role `json:"role"`
}

func toUserResponse(u *entity.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:                   u.ID,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Email:                u.Email,
		SpecialMemberName:    u.SpecialMemberName,
		NonMemberDisplayName: u.NonMemberDisplayName,
		Admin:                u.Admin,
		MembershipStatus:     u.MembershipStatus,
		Role:                 entity.RoleOf(u),
	}
}
