package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the credential store operations consumed by the core.
// Implementations return ErrNotFound for missing rows and ErrDuplicateEmail
// when the unique email constraint rejects an insert.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	// SetAdminFlags writes both role flags in a single update.
	SetAdminFlags(ctx context.Context, id string, flags entity.RoleFlags) error
	// SetAdminFlag grants admin without touching membership.
	SetAdminFlag(ctx context.Context, id string) error
	SetMembershipFlag(ctx context.Context, id string) error
}
