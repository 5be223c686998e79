package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/mailer"
	tpl "github.com/oksasatya/clubhouse/pkg/mailer/templates"
)

func validSignUp() SignUpInput {
	return SignUpInput{
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Email:                "ada@example.com",
		Password:             "engine",
		ConfirmPassword:      "engine",
		NonMemberDisplayName: "countess",
	}
}

func newAuth(t *testing.T) (*AuthService, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	users := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := NewAuthService(users, testHasher(), NewNotifier(pub, true, "clubhouse", nil), nil)
	return svc, users, pub
}

func TestSignUp_CreatesUserWithHashedPassword(t *testing.T) {
	svc, users, pub := newAuth(t)
	ctx := context.Background()

	in := validSignUp()
	in.FirstName = "  Ada  "
	u, err := svc.SignUp(ctx, in)
	require.NoError(t, err)

	stored := users.get(u.ID)
	assert.Equal(t, "Ada", stored.FirstName)
	assert.NotEqual(t, "engine", stored.Password)
	assert.True(t, testHasher().Verify("engine", stored.Password))
	assert.False(t, stored.Admin)
	assert.False(t, stored.MembershipStatus)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0].(mailer.EmailJob)
	assert.Equal(t, "ada@example.com", job.To)
	assert.Equal(t, tpl.Welcome, job.Template)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, users, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, validSignUp())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, users.inserts)
}

func TestSignUp_ConstraintViolationMapsToDuplicate(t *testing.T) {
	svc, users, _ := newAuth(t)
	users.insertErr = repo.ErrDuplicateEmail

	_, err := svc.SignUp(context.Background(), validSignUp())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignUp_ValidationReportsEveryField(t *testing.T) {
	svc, users, pub := newAuth(t)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName:            "   ",
		Email:                "not-an-email",
		Password:             "short",
		ConfirmPassword:      "different",
		NonMemberDisplayName: "",
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	msgs := map[string]string{}
	for _, f := range verr.Fields {
		msgs[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"first_name":              "First name is required",
		"last_name":               "Last name is required",
		"email":                   "A valid email is required",
		"password":                "Password must be at least 6 characters",
		"confirm_password":        "Passwords do not match",
		"non_member_display_name": "Non-member display name is required",
	}, msgs)
	assert.Zero(t, users.inserts)
	assert.Empty(t, pub.jobs)
}

func TestSignUp_PasswordOverBcryptLimit(t *testing.T) {
	svc, users, _ := newAuth(t)

	in := validSignUp()
	in.Password = strings.Repeat("a", 80)
	in.ConfirmPassword = in.Password
	_, err := svc.SignUp(context.Background(), in)
	require.ErrorIs(t, err, ErrValidationFailed)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "password", verr.Fields[0].Field)
	assert.Equal(t, "Password must be at most 72 bytes", verr.Fields[0].Message)
	assert.Zero(t, users.inserts)

	in.Password = strings.Repeat("a", 72)
	in.ConfirmPassword = in.Password
	_, err = svc.SignUp(context.Background(), in)
	require.NoError(t, err)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }
func (failingHasher) Verify(string, string) bool  { return false }

func TestSignUp_HasherFailureIsTyped(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), failingHasher{}, NewNotifier(nil, false, "clubhouse", nil), nil)

	_, err := svc.SignUp(context.Background(), validSignUp())
	assert.ErrorIs(t, err, ErrHashFailed)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestSignUp_StoreUnavailable(t *testing.T) {
	svc, users, _ := newAuth(t)
	users.findErr = errors.New("connection refused")

	_, err := svc.SignUp(context.Background(), validSignUp())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newAuth(t)
	ctx := context.Background()
	created, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "ada@example.com", "engine")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "engine")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// exact match only
	_, err = svc.Authenticate(ctx, "ADA@example.com", "engine")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_StoreErrorIsNotInvalidCredentials(t *testing.T) {
	svc, users, _ := newAuth(t)
	users.findErr = context.DeadlineExceeded

	_, err := svc.Authenticate(context.Background(), "ada@example.com", "engine")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_MalformedStoredHash(t *testing.T) {
	svc, users, _ := newAuth(t)
	users.add(entity.User{Email: "x@example.com", Password: "garbage"})

	_, err := svc.Authenticate(context.Background(), "x@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
