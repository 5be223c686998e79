package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, p := range []string{"secret1", "pässwörd", " spaced ", ""} {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.True(t, h.Verify(p, hash), "password %q should verify", p)
	}
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestPasswordHasher_WrongPassword(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.False(t, h.Verify("correct horse ", hash))
	assert.False(t, h.Verify("Correct horse", hash))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("x", ""))
	assert.False(t, h.Verify("x", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("x", "$2a$10$"))
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost)

	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
}
