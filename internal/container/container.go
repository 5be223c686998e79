package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/config"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/helpers"
)

// Process-wide singletons built in main and read by the router when wiring modules.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	sessionStore repository.SessionRepository
	secrets      entity.SecretConfiguration
	signer       *helpers.SessionSigner
	cookies      *helpers.Manager
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return logger
}

func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetSessionStore(s repository.SessionRepository) { sessionStore = s }
func GetSessionStore() repository.SessionRepository  { return sessionStore }

func SetSecrets(s entity.SecretConfiguration) { secrets = s }
func GetSecrets() entity.SecretConfiguration  { return secrets }

func SetSessionSigner(s *helpers.SessionSigner) { signer = s }
func GetSessionSigner() *helpers.SessionSigner {
	if signer == nil {
		c := GetConfig()
		signer = helpers.NewSessionSigner(c.SessionSecret, c.SessionTTL)
	}
	return signer
}

func SetCookies(m *helpers.Manager) { cookies = m }
func GetCookies() *helpers.Manager {
	if cookies == nil {
		c := GetConfig()
		cookies = helpers.NewCookie(c.SessionCookieName, c.CookieDomain, c.CookieSecure)
	}
	return cookies
}
