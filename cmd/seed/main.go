package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/config"
	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/domain/repository"
	pginfra "github.com/oksasatya/clubhouse/internal/infrastructure/postgres"
	"github.com/oksasatya/clubhouse/pkg/helpers"
)

// seed creates (or promotes) a single administrator so a fresh database has
// someone who can moderate the board.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	email := envOr("SEED_ADMIN_EMAIL", "admin@clubhouse.local")
	password := envOr("SEED_ADMIN_PASSWORD", "password123")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	u, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, herr := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(password)
		if herr != nil {
			logger.WithError(herr).Fatal("failed to hash password")
		}
		u = &entity.User{
			FirstName:            "Club",
			LastName:             "Admin",
			Email:                email,
			Password:             hash,
			SpecialMemberName:    "The Doorkeeper",
			NonMemberDisplayName: "a moderator",
		}
		if err := users.Insert(ctx, u); err != nil {
			helpers.LogError(logger, "failed to insert admin", err, logrus.Fields{"email": email})
			os.Exit(1)
		}
		helpers.LogInfo(logger, "seeded admin user", logrus.Fields{"id": u.ID, "email": email})
	case err != nil:
		helpers.LogError(logger, "failed to look up admin", err, logrus.Fields{"email": email})
		os.Exit(1)
	default:
		helpers.LogInfo(logger, "admin user already exists", logrus.Fields{"id": u.ID, "email": email})
	}

	if err := users.SetAdminFlags(ctx, u.ID, entity.RoleFlags{Admin: true, MembershipStatus: true}); err != nil {
		helpers.LogError(logger, "failed to grant admin", err, logrus.Fields{"id": u.ID})
		os.Exit(1)
	}
	logger.WithField("email", email).Info("admin and membership flags set")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
