package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	"github.com/oksasatya/clubhouse/internal/domain/repository"
)

const userColumns = `id, first_name, last_name, email, password,
		COALESCE(special_member_name, ''), non_member_display_name,
		admin, membership_status, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, special_member_name, non_member_display_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, admin, membership_status, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Password, nullIfEmpty(u.SpecialMemberName), u.NonMemberDisplayName)

	if err := row.Scan(&u.ID, &u.Admin, &u.MembershipStatus, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.SpecialMemberName, &u.NonMemberDisplayName,
		&u.Admin, &u.MembershipStatus, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetAdminFlags(ctx context.Context, id string, flags entity.RoleFlags) error {
	return r.exec(ctx, `
		UPDATE users SET admin = $2, membership_status = $3, updated_at = now()
		WHERE id = $1
	`, id, flags.Admin, flags.MembershipStatus)
}

func (r *UserRepository) SetAdminFlag(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET admin = true, updated_at = now() WHERE id = $1`, id)
}

func (r *UserRepository) SetMembershipFlag(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE users SET membership_status = true, updated_at = now() WHERE id = $1`, id)
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
