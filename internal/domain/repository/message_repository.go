package repository

import (
	"context"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
)

// MessageRepository persists feed entries.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	// Feed returns every message joined with its author, newest first.
	Feed(ctx context.Context) ([]entity.FeedRow, error)
	// Delete removes a message, returning ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
