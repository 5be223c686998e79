package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
)

// EscalationScope selects which secret classes an entry point accepts.
type EscalationScope int

const (
	// ScopeAdminOnly is the admin-join flow: only the admin secret, and only
	// the admin flag is written.
	ScopeAdminOnly EscalationScope = iota + 1
	// ScopeUnified is the secret page: the admin secret grants admin and
	// membership, a member secret grants membership.
	ScopeUnified
)

func (s EscalationScope) String() string {
	switch s {
	case ScopeAdminOnly:
		return "admin_only"
	case ScopeUnified:
		return "unified"
	default:
		return "unknown"
	}
}

type EscalationOutcome int

const (
	OutcomeRejected EscalationOutcome = iota
	OutcomeAdminGranted
	OutcomeMemberGranted
)

func (o EscalationOutcome) String() string {
	switch o {
	case OutcomeAdminGranted:
		return "admin_granted"
	case OutcomeMemberGranted:
		return "member_granted"
	default:
		return "rejected"
	}
}

// EscalationService upgrades role flags when a caller presents a configured secret.
type EscalationService struct {
	Repo     repo.UserRepository
	Secrets  entity.SecretConfiguration
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewEscalationService(users repo.UserRepository, secrets entity.SecretConfiguration, notifier *Notifier, logger *logrus.Logger) *EscalationService {
	return &EscalationService{Repo: users, Secrets: secrets, Notifier: notifier, Logger: logger}
}

// Attempt evaluates submitted against the secrets for scope and applies at most
// one store update. Matching is exact; whitespace is significant. Re-submitting
// a secret whose flag is already set rewrites it and reports the same grant.
func (s *EscalationService) Attempt(ctx context.Context, user *entity.User, submitted string, scope EscalationScope) (EscalationOutcome, error) {
	if err := Authorize(user, ActionEscalate); err != nil {
		return OutcomeRejected, err
	}

	var (
		outcome = OutcomeRejected
		err     error
	)
	switch {
	case s.Secrets.MatchesAdmin(submitted) && scope == ScopeAdminOnly:
		outcome = OutcomeAdminGranted
		err = s.Repo.SetAdminFlag(ctx, user.ID)
	case s.Secrets.MatchesAdmin(submitted) && scope == ScopeUnified:
		outcome = OutcomeAdminGranted
		err = s.Repo.SetAdminFlags(ctx, user.ID, entity.RoleFlags{Admin: true, MembershipStatus: true})
	case scope == ScopeUnified && s.Secrets.MatchesMember(submitted):
		outcome = OutcomeMemberGranted
		err = s.Repo.SetMembershipFlag(ctx, user.ID)
	}

	fields := logrus.Fields{"user_id": user.ID, "scope": scope.String(), "outcome": outcome.String()}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// the session outlived its user
			return OutcomeRejected, ErrUnauthenticated
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(fields).Error("escalation update failed")
		}
		return OutcomeRejected, storeError("update role flags", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(fields).Info("escalation attempt")
	}

	switch outcome {
	case OutcomeAdminGranted:
		s.Notifier.RoleGranted(ctx, user, entity.RoleAdmin)
	case OutcomeMemberGranted:
		s.Notifier.RoleGranted(ctx, user, entity.RoleMember)
	}
	return outcome, nil
}
