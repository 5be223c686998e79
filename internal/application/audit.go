package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
)

// Auditor records security-relevant events. It never fails the caller.
type Auditor struct {
	Repo   repo.AuditRepository
	Logger *logrus.Logger
}

func NewAuditor(r repo.AuditRepository, logger *logrus.Logger) *Auditor {
	return &Auditor{Repo: r, Logger: logger}
}

func (a *Auditor) Record(ctx context.Context, e entity.AuditEntry) {
	if a == nil || a.Repo == nil {
		return
	}
	if err := a.Repo.Insert(ctx, e); err != nil && a.Logger != nil {
		a.Logger.WithError(err).WithField("action", e.Action).Warn("audit insert failed")
	}
}
