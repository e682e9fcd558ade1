package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/local-avatar-api/internal/database"
)

// optionRepo is the concrete implementation of OptionRepository
type optionRepo struct {
	db *database.DB
}

// NewOptionRepo creates a new site option repository
func NewOptionRepo(db *database.DB) OptionRepository {
	return &optionRepo{db: db}
}

// Get returns the value of a site option and whether it is set
func (r *optionRepo) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM options WHERE name = $1", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load option %q: %w", name, err)
	}
	return value, true, nil
}
