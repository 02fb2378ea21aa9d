package handler

import (
	"time"

	"auth-service/internal/domain/user"
)

// SignupResponse mirrors the account-creation contract.
type SignupResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserResponse carries full user info, with both the role list and the
// single primary role for convenience.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Role      string    `json:"role"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SigninResponse carries the raw compact token; the client prefixes
// "Bearer " itself on subsequent requests.
type SigninResponse struct {
	Token string `json:"token"`
}

func newSignupResponse(u *user.User) SignupResponse {
	return SignupResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     []string{string(u.Role)},
		Role:      string(u.Role),
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
