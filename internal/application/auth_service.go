package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/validation"
)

// dummyPassword is hashed once per service so that unknown emails cost a
// bcrypt comparison just like a wrong password does.
const dummyPassword = "clubhouse-timing-equalizer"

type AuthService struct {
	Repo     repo.UserRepository
	Hasher   PasswordHasher
	Notifier *Notifier
	Logger   *logrus.Logger

	dummyHash string
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, notifier *Notifier, logger *logrus.Logger) *AuthService {
	s := &AuthService{Repo: users, Hasher: hasher, Notifier: notifier, Logger: logger}
	if h, err := hasher.Hash(dummyPassword); err == nil {
		s.dummyHash = h
	}
	return s
}

// Authenticate validates an email/password pair and returns the stored user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials;
// store failures yield ErrStoreUnavailable.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		if s.dummyHash != "" {
			_ = s.Hasher.Verify(password, s.dummyHash)
		}
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("find user by email failed")
		}
		return nil, storeError("find user by email", err)
	}
	if !s.Hasher.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// SignUpInput is the registration form. Name fields are trimmed before validation.
type SignUpInput struct {
	FirstName            string `json:"first_name" validate:"nonblank" msg:"First name is required"`
	LastName             string `json:"last_name" validate:"nonblank" msg:"Last name is required"`
	Email                string `json:"email" validate:"email" msg:"A valid email is required"`
	Password             string `json:"password" validate:"pwd" msg:"Password must be at least 6 characters" msg_pwdbytes:"Password must be at most 72 bytes"`
	ConfirmPassword      string `json:"confirm_password" validate:"eqfield=Password" msg:"Passwords do not match"`
	SpecialMemberName    string `json:"special_member_name"`
	NonMemberDisplayName string `json:"non_member_display_name" validate:"nonblank" msg:"Non-member display name is required"`
}

func (in *SignUpInput) sanitize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.NonMemberDisplayName = strings.TrimSpace(in.NonMemberDisplayName)
}

// SignUp validates the form, hashes the password and inserts the user with both
// role flags false. A taken email yields ErrDuplicateEmail and no insert.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	in.sanitize()
	if fields := validation.Struct(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.Repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, storeError("find user by email", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashFailed, err)
	}
	u := &entity.User{
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Email:                in.Email,
		Password:             hash,
		SpecialMemberName:    in.SpecialMemberName,
		NonMemberDisplayName: in.NonMemberDisplayName,
	}
	if err := s.Repo.Insert(ctx, u); err != nil {
		// a concurrent sign-up can still win the race; the constraint decides
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("insert user failed")
		}
		return nil, storeError("insert user", err)
	}

	s.Notifier.Welcome(ctx, u)
	return u, nil
}
