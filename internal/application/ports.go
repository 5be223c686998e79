package application

import (
	"context"
)

// PasswordHasher is the one-way hash primitive used for credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Publisher enqueues notification jobs (RabbitMQ in production).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
