package entity

import (
	"time"
)

// User is the aggregate root for the membership board.
// Password holds a bcrypt hash, never the plaintext.
//
// Email is matched exactly (case-sensitive) and is unique across users.
type User struct {
	ID                   string
	FirstName            string
	LastName             string
	Email                string
	Password             string
	SpecialMemberName    string // optional; empty when not set
	NonMemberDisplayName string
	Admin                bool
	MembershipStatus     bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsMember reports whether the user may see member-only details.
// Admins always count as members for display purposes.
func (u *User) IsMember() bool {
	return u != nil && (u.MembershipStatus || u.Admin)
}

// DisplayName is the label shown next to the user's messages for the given viewer.
func (u *User) DisplayName(viewer *User) string {
	if viewer.IsMember() && u.SpecialMemberName != "" {
		return u.SpecialMemberName
	}
	return u.NonMemberDisplayName
}

// RoleFlags is the pair of role flags written atomically by escalation.
type RoleFlags struct {
	Admin            bool
	MembershipStatus bool
}

// Flags returns the user's current role flags.
func (u *User) Flags() RoleFlags {
	return RoleFlags{Admin: u.Admin, MembershipStatus: u.MembershipStatus}
}
