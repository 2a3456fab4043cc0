package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

var userConstraints = constraintError{
	"users_role_check": user.ErrInvalidRole,
}

type userRepositoryImpl struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	var (
		found user.User
		role  string
	)
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&role,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	found.Role = user.Role(role)

	return found, nil
}

// Upsert implements user.UserRepository. Seeding the same email twice
// refreshes the password hash and role.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT users_email_key
		DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
		RETURNING id, email, password_hash, role, created_at
	`

	var (
		saved user.User
		role  string
	)
	err := q.QueryRow(ctx, query, u.Email, u.PasswordHash, string(u.Role)).Scan(
		&saved.ID,
		&saved.Email,
		&saved.PasswordHash,
		&role,
		&saved.CreatedAt,
	)
	if err != nil {
		if translated := userConstraints.translate(err); translated != err {
			return user.User{}, translated
		}
		return user.User{}, fmt.Errorf("failed to upsert user %s: %w", u.Email, err)
	}
	saved.Role = user.Role(role)

	return saved, nil
}
