package repository

import (
	"context"
	"time"
)

// SessionRepository maps opaque session tokens to user ids.
//
// Get returns ok=false for unknown, unbound or expired tokens.
// Unbind must succeed for tokens that were never bound.
type SessionRepository interface {
	Get(ctx context.Context, token string) (userID string, ok bool, err error)
	Bind(ctx context.Context, token, userID string, ttl time.Duration) error
	Unbind(ctx context.Context, token string) error
}
