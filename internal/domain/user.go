package domain

import "time"

// Role enumerates portal access levels.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RoleClient   Role = "client"
)

// IsStaff reports whether the role may view and mutate all applications.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleDirector
}

// User is the domain model for portal accounts. Clients submit and track
// their own applications; admins and directors manage all of them.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
