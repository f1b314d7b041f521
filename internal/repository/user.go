package repository

import (
	"context"

	"docmanage/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by exact email match. Returns sql.ErrNoRows
	// when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
