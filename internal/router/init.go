package router

import (
	"github.com/oksasatya/clubhouse/internal/application"
	"github.com/oksasatya/clubhouse/internal/container"
	pginfra "github.com/oksasatya/clubhouse/internal/infrastructure/postgres"
	"github.com/oksasatya/clubhouse/internal/infrastructure/search"
	handlers "github.com/oksasatya/clubhouse/internal/interface/http"
	"github.com/oksasatya/clubhouse/internal/interface/middleware"
	"github.com/oksasatya/clubhouse/internal/router/modules"
	"github.com/oksasatya/clubhouse/pkg/helpers"
)

type moduleDeps struct {
	Auth    *handlers.AuthHandler
	Secret  *handlers.SecretHandler
	Message *handlers.MessageHandler
}

func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetPGPool()

	users := pginfra.NewUserRepository(db)
	auditor := application.NewAuditor(pginfra.NewAuditRepository(db), logger)

	var publisher application.Publisher
	if pub := container.GetRabbitPub(); pub != nil {
		publisher = pub
	}
	notifier := application.NewNotifier(publisher, cfg.MailSendEnabled, cfg.AppName, logger)

	var index application.MessageIndex
	if es := container.GetES(); es != nil && cfg.SearchEnabled {
		index = search.NewMessageIndex(es, cfg.ESMessagesIndex)
	}

	sessions := application.NewSessionManager(container.GetSessionStore(), users, cfg.SessionTTL, logger)
	auth := application.NewAuthService(users, helpers.NewPasswordHasher(cfg.BcryptCost), notifier, logger)
	escalation := application.NewEscalationService(users, container.GetSecrets(), notifier, logger)
	messages := application.NewMessageService(pginfra.NewMessageRepository(db), index, logger)

	return moduleDeps{
		Auth:    handlers.NewAuthHandler(auth, sessions, container.GetSessionSigner(), container.GetCookies(), auditor, logger),
		Secret:  handlers.NewSecretHandler(escalation, sessions, auditor, logger),
		Message: handlers.NewMessageHandler(messages, sessions, auditor, logger),
	}
}

// InitModules wires every feature module from the container singletons.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	deps := buildDeps()

	r.Use(middleware.SessionToken(container.GetCookies(), container.GetSessionSigner()))

	r.Add(modules.NewAuthModule(deps.Auth, cfg.SignInRateLimit, cfg.SignUpRateLimit))
	r.Add(modules.NewSecretModule(deps.Secret, cfg.SecretRateLimit))
	r.Add(modules.NewMessageModule(deps.Message))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(cfg.Env == "production"))
	}
}
