package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, login, display_name, created_at, updated_at FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail retrieves a user by email address (case-insensitive)
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, login, display_name, created_at, updated_at FROM users WHERE lower(email) = $1`
	return r.scanOne(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepo) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Login, &user.DisplayName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &user, nil
}

// GetMeta returns a single user metadata value, or "" if it is not set
func (r *userRepo) GetMeta(ctx context.Context, userID int64, key string) (string, error) {
	query := `SELECT meta_value FROM user_meta WHERE user_id = $1 AND meta_key = $2 ORDER BY id LIMIT 1`

	var value string
	err := r.db.QueryRowContext(ctx, query, userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user meta %q: %w", key, err)
	}
	return value, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
