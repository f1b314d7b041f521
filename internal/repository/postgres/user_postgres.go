package postgres

import (
	"context"
	"database/sql"

	"docmanage/internal/model"
	"docmanage/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, email, password_hash, role, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
	)
	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.Username,
		&out.Email,
		&out.PasswordHash,
		&out.Role,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, username, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by exact email match.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, username, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
