package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
)

// SessionManager maps opaque session tokens to users. It never caches users:
// every Resolve re-reads the record so role changes apply on the next request.
type SessionManager struct {
	Sessions repo.SessionRepository
	Users    repo.UserRepository
	TTL      time.Duration
	Logger   *logrus.Logger
}

func NewSessionManager(sessions repo.SessionRepository, users repo.UserRepository, ttl time.Duration, logger *logrus.Logger) *SessionManager {
	return &SessionManager{Sessions: sessions, Users: users, TTL: ttl, Logger: logger}
}

// NewToken returns a fresh opaque session token.
func (m *SessionManager) NewToken() string {
	return uuid.NewString()
}

// Resolve returns the user bound to token, or nil for an anonymous caller:
// empty token, unbound token, or a binding whose user no longer exists.
// Only store failures produce an error.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	userID, ok, err := m.Sessions.Get(ctx, token)
	if err != nil {
		return nil, storeError("get session", err)
	}
	if !ok || userID == "" {
		return nil, nil
	}
	u, err := m.Users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		if m.Logger != nil {
			m.Logger.WithField("user_id", userID).Debug("session bound to missing user")
		}
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user by id", err)
	}
	return u, nil
}

// Bind associates token with userID.
func (m *SessionManager) Bind(ctx context.Context, token, userID string) error {
	if err := m.Sessions.Bind(ctx, token, userID, m.TTL); err != nil {
		return storeError("bind session", err)
	}
	return nil
}

// Unbind clears any binding for token. Unknown tokens are not an error.
func (m *SessionManager) Unbind(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.Sessions.Unbind(ctx, token); err != nil {
		return storeError("unbind session", err)
	}
	return nil
}
