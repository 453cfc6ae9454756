package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies the signed tokens that carry a session.
// Access tokens authenticate API calls; refresh tokens trade in for a
// fresh pair without re-entering credentials.
type JWTService interface {
	// GenerateToken signs a short-lived access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the signature, expiry and token type of an
	// access token and returns its claims. A refresh token presented
	// here is rejected.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a long-lived refresh token for the user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks a refresh token the same way
	// ValidateToken checks an access token, accepting only the refresh
	// type.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a verified token.
type Claims struct {
	// UserID identifies the account the token was minted for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh"; validation refuses a token
	// presented outside its role.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
