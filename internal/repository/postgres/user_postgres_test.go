package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docmanage/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(u *model.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt)
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := &model.User{
		ID:           "user-uuid",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.CreatedAt).
		WillReturnRows(userRows(u))

	result, err := repo.Create(ctx, u)

	assert.NoError(t, err)
	assert.Equal(t, u.Email, result.Email)
	assert.Equal(t, model.RoleUser, result.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		u := &model.User{ID: "user-uuid", Username: "alice", Email: "alice@example.com", PasswordHash: "h", Role: model.RoleUser, CreatedAt: time.Now()}
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("alice@example.com").
			WillReturnRows(userRows(u))

		got, err := repo.FindByEmail(ctx, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "user-uuid", got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, got)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := &model.User{ID: "user-uuid", Username: "bob", Email: "bob@example.com", PasswordHash: "h", Role: model.RoleAdmin, CreatedAt: time.Now()}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs("user-uuid").
		WillReturnRows(userRows(u))

	got, err := repo.FindByID(ctx, "user-uuid")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
