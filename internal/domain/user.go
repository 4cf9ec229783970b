package domain

import "time"

// Role governs authorization. Users default to RoleUser; RoleAdmin may
// access any user record.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string
	Email        string // unique, the login key
	PasswordHash string // bcrypt encoded, never serialized in responses
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
