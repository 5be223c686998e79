package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	plain := &entity.User{ID: "u1"}
	member := &entity.User{ID: "u2", MembershipStatus: true}
	admin := &entity.User{ID: "u3", Admin: true}

	for _, action := range []Action{ActionCompose, ActionPostMessage, ActionEscalate, ActionDeleteMessage} {
		assert.ErrorIs(t, Authorize(nil, action), ErrUnauthenticated)
		assert.NoError(t, Authorize(admin, action))
	}

	assert.NoError(t, Authorize(plain, ActionPostMessage))
	assert.NoError(t, Authorize(plain, ActionCompose))
	assert.NoError(t, Authorize(plain, ActionEscalate))
	assert.ErrorIs(t, Authorize(plain, ActionDeleteMessage), ErrForbidden)
	assert.ErrorIs(t, Authorize(member, ActionDeleteMessage), ErrForbidden)
	assert.ErrorIs(t, Authorize(plain, Action(99)), ErrForbidden)
}
