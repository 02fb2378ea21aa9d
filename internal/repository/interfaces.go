package repository

import (
	"context"

	"auth-service/internal/domain/user"
)

// UserRepository is the identity store consumed by the HTTP handlers.
// Token verification itself never touches it; it is only used at signup,
// sign-in, and for authenticated lookups.
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id int64, role user.Role) (*user.User, error)
}
