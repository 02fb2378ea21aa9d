package user

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

const (
	authorityUser  = "ROLE_USER"
	authorityAdmin = "ROLE_ADMIN"

	errUnknownRoleFmt      = "unknown role: %q"
	errUnknownAuthorityFmt = "unknown authority: %q"
)

// Authority returns the wire form of the role as carried in token claims.
func (r Role) Authority() string {
	switch r {
	case RoleAdmin:
		return authorityAdmin
	default:
		return authorityUser
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole maps a role name ("USER", "ADMIN") to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf(errUnknownRoleFmt, s)
	}
}

// RoleFromAuthority maps a claim authority string back to a Role.
func RoleFromAuthority(s string) (Role, error) {
	switch s {
	case authorityUser:
		return RoleUser, nil
	case authorityAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf(errUnknownAuthorityFmt, s)
	}
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}
