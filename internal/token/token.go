package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"docmanage/internal/config"
)

// ErrInvalidToken covers every resolve failure: bad signature, expiry,
// malformed input, wrong signing method. Callers translate it to a 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT claims carried by our tokens. Role is set on access
// tokens only; refresh tokens identify the subject and nothing else.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and validates HS256-signed access and refresh tokens.
// It is stateless: there is no revocation list, so the access TTL is kept
// short and refresh tokens are used to re-issue.
type Service struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New builds a token Service from configuration.
func New(cfg config.JWTConfig) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &Service{
		signingKey: []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTTLHours) * time.Hour,
	}, nil
}

// IssueAccessToken signs a short-lived token carrying the subject id and role.
func (s *Service) IssueAccessToken(userID, role string) (string, error) {
	return s.sign(Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
}

// IssueRefreshToken signs a longer-lived token carrying only the subject id.
func (s *Service) IssueRefreshToken(userID string) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
}

// Resolve parses and verifies a token, returning its claims.
func (s *Service) Resolve(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
