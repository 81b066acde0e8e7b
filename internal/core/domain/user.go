package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold. Anything outside
// RoleUser/RoleAdmin is rejected at parse time so downstream code never
// has to handle a third value.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role, failing on unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// IsValid reports whether the role is one of the known variants.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// User is an authenticated actor. PasswordHash never crosses the wire:
// it is excluded from JSON and every service returns public projections.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Nom          string    `json:"nom"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the resolved caller attached to a request after token
// verification. Request-scoped only, never persisted.
type Identity struct {
	UserID string
	Role   Role
	User   *User
}

// IsAdmin reports whether the identity bypasses ownership filters.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
