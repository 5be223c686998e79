package application

import "github.com/oksasatya/clubhouse/internal/domain/entity"

// Action is a protected operation checked before any side effect.
type Action int

const (
	ActionCompose Action = iota + 1
	ActionPostMessage
	ActionDeleteMessage
	ActionEscalate
)

// Authorize checks the resolved identity against action. A nil user yields
// ErrUnauthenticated; a user lacking the role yields ErrForbidden.
func Authorize(user *entity.User, action Action) error {
	if user == nil {
		return ErrUnauthenticated
	}
	switch action {
	case ActionDeleteMessage:
		if !user.Admin {
			return ErrForbidden
		}
	case ActionCompose, ActionPostMessage, ActionEscalate:
		// any signed-in user
	default:
		return ErrForbidden
	}
	return nil
}
