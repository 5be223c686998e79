package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/pkg/mailer"
	tpl "github.com/oksasatya/clubhouse/pkg/mailer/templates"
)

// Notifier enqueues best-effort email jobs. A nil Notifier, a nil publisher or
// a disabled notifier are all no-ops; publish failures are logged, never returned.
type Notifier struct {
	Pub     Publisher
	Enabled bool
	AppName string
	Logger  *logrus.Logger
}

func NewNotifier(pub Publisher, enabled bool, appName string, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Enabled: enabled, AppName: appName, Logger: logger}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	n.publish(ctx, u, tpl.Welcome, nil)
}

func (n *Notifier) RoleGranted(ctx context.Context, u *entity.User, role entity.Role) {
	n.publish(ctx, u, tpl.RoleGranted, map[string]any{"Role": string(role)})
}

func (n *Notifier) publish(ctx context.Context, u *entity.User, template string, extra map[string]any) {
	if n == nil || !n.Enabled || n.Pub == nil || u == nil {
		return
	}
	data := map[string]any{
		"Name":    u.FirstName,
		"Email":   u.Email,
		"AppName": n.AppName,
		"Time":    time.Now().UTC().Format("02 January 2006, 15:04"),
	}
	for k, v := range extra {
		data[k] = v
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: data}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{"user_id": u.ID, "template": template}).Warn("failed to publish email job")
	}
}
