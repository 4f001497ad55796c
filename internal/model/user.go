package model

import (
	"strings"
	"time"
)

// User is the local record of an authenticated member. ExternalID is the
// identity provider's subject.
type User struct {
	ID         int64     `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	IsStaff    bool      `json:"is_staff" db:"is_staff"`
	Created    time.Time `json:"created" db:"created"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role is a member's position in the organization.
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleOrganizer Role = "ORGANIZER"
	RoleBoard     Role = "BOARD"
	RoleSecretary Role = "SECRETARY"
	RoleTreasurer Role = "TREASURER"
	RoleChair     Role = "CHAIR"
)

// DefaultRole is assigned to every new profile.
const DefaultRole = RoleMember

// Roles lists every role in display order.
var Roles = []Role{RoleMember, RoleOrganizer, RoleBoard, RoleSecretary, RoleTreasurer, RoleChair}

var roleDisplay = map[Role]string{
	RoleMember:    "Member",
	RoleOrganizer: "Organizer",
	RoleBoard:     "Board Member",
	RoleSecretary: "Secretary",
	RoleTreasurer: "Treasurer",
	RoleChair:     "Chair",
}

func (r Role) Display() string {
	if d, ok := roleDisplay[r]; ok {
		return d
	}
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := roleDisplay[r]
	return ok
}

// ParseRole validates s. An empty string yields DefaultRole.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return DefaultRole, true
	}
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// UserProfile is the public face of a member.
type UserProfile struct {
	UserID      int64     `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Show        bool      `json:"show" db:"show"`
	Role        Role      `json:"role" db:"role"`
	Created     time.Time `json:"created" db:"created"`
	Modified    time.Time `json:"modified" db:"modified"`
}

// IsOrganizer reports whether the profile holds any role above member.
func (p *UserProfile) IsOrganizer() bool {
	return p.Role != RoleMember
}
