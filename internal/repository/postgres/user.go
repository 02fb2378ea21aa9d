package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"auth-service/internal/domain/user"
	apperrors "auth-service/pkg/errors"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, user_role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password_hash, user_role, is_deleted, created_at, updated_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Username, input.Email, input.PasswordHash, string(input.Role)).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.EmailAlreadyExists()
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, user_role, is_deleted, created_at, updated_at
		FROM users
		WHERE id = $1 AND NOT is_deleted
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, user_role, is_deleted, created_at, updated_at
		FROM users
		WHERE email = $1 AND NOT is_deleted
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND NOT is_deleted)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, errFailedCheckEmail(err)
	}

	return exists, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role user.Role) (*user.User, error) {
	query := `
		UPDATE users
		SET user_role = $2, updated_at = NOW()
		WHERE id = $1 AND NOT is_deleted
		RETURNING id, username, email, password_hash, user_role, is_deleted, created_at, updated_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, id, string(role)).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedUpdateUserRole(err)
	}

	return u, nil
}
