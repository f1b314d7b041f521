package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docmanage/internal/model"
	"docmanage/internal/repository"
	"docmanage/internal/token"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// TokenPair is the login response: a short-lived access token carrying the
// role and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthService defines the registration and login use cases.
type AuthService interface {
	// Register creates a user with role "user". Returns ErrEmailTaken when
	// the email is already registered (exact match).
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and issues a token pair. Unknown email and
	// wrong password both return ErrInvalidCredentials so a caller cannot
	// tell which one failed.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Service
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
