package entity

// Role is the effective role derived from a user's flags.
// It is never stored; the flags on User are the source of truth.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleNonMember Role = "non_member"
	RoleMember    Role = "member"
	RoleAdmin     Role = "admin"
)

// RoleOf maps a (possibly nil) user to its effective role.
func RoleOf(u *User) Role {
	switch {
	case u == nil:
		return RoleAnonymous
	case u.Admin:
		return RoleAdmin
	case u.MembershipStatus:
		return RoleMember
	default:
		return RoleNonMember
	}
}
