package auth

import (
	"context"
	"time"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
// Tokens are bound to a username, carried in the subject claim.
type JWTService interface {
	// GenerateToken creates a signed access token for username.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates an access token and extracts its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed, longer-lived refresh token.
	GenerateRefreshToken(ctx context.Context, username string) (string, error)

	// ValidateRefreshToken validates a refresh token and extracts its claims.
	// Returns ErrExpiredRefreshToken, ErrWrongTokenType or ErrInvalidRefreshToken on failure.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of a token.
type Claims struct {
	Username  string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
