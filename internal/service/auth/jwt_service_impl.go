package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskdesk-api/internal/config"
	"github.com/phrazzld/taskdesk-api/internal/platform/logger"
)

const minSecretLength = 32

// hmacJWTService is an implementation of JWTService using HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time
	clockSkew            time.Duration
}

type jwtCustomClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	return newHMACJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.TokenLifetimeMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenLifetimeMinutes)*time.Minute,
		time.Now,
	), nil
}

func newHMACJWTService(secret string, access, refresh time.Duration, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        access,
		refreshTokenLifetime: refresh,
		timeFunc:             timeFunc,
		clockSkew:            2 * time.Minute,
	}
}

// GenerateToken implements JWTService.
func (s *hmacJWTService) GenerateToken(ctx context.Context, username string) (string, error) {
	return s.sign(ctx, username, TokenTypeAccess, s.tokenLifetime)
}

// GenerateRefreshToken implements JWTService.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, username string) (string, error) {
	return s.sign(ctx, username, TokenTypeRefresh, s.refreshTokenLifetime)
}

// ValidateToken implements JWTService.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(ctx, tokenString, TokenTypeAccess)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefreshToken implements JWTService.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parse(ctx, tokenString, TokenTypeRefresh)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredRefreshToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		}
		return nil, ErrInvalidRefreshToken
	}
	return claims, nil
}

func (s *hmacJWTService) sign(
	ctx context.Context,
	username, tokenType string,
	lifetime time.Duration,
) (string, error) {
	now := s.timeFunc()
	claims := jwtCustomClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContextOrDefault(ctx).Error("failed to sign JWT",
			"error", err,
			"username", username,
			"token_type", tokenType)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", tokenType, err)
	}
	return signed, nil
}

// parse verifies the signature, the time claims with clock-skew leeway and
// the token type. Errors are the raw jwt errors or ErrWrongTokenType.
func (s *hmacJWTService) parse(ctx context.Context, tokenString, tokenType string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		log.Debug("token validation failed",
			"error", err,
			"token_type", tokenType)
		return nil, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug("token validation failed: invalid claims", "token_type", tokenType)
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return &Claims{
		Username:  claims.Subject,
		TokenType: claims.TokenType,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
