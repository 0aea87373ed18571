package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/taskdesk-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:                   testSecret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 60 * 24,
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute
	svc := newHMACJWTService(testSecret, lifetime, 24*time.Hour, fixedClock(fixedTime))

	token, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc := newHMACJWTService(testSecret, time.Hour, time.Hour, fixedClock(fixedTime))
	first, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime))
				token, _ := svc.GenerateToken(context.Background(), "alice")
				return svc, token
			},
		},
		{
			name: "expired within leeway",
			setupFunc: func() (JWTService, string) {
				gen := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "alice")
				val := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime.Add(lifetime+time.Minute)))
				return val, token
			},
		},
		{
			name: "expired token",
			setupFunc: func() (JWTService, string) {
				gen := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "alice")
				val := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime.Add(lifetime+time.Hour)))
				return val, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			setupFunc: func() (JWTService, string) {
				gen := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime))
				token, _ := gen.GenerateToken(context.Background(), "alice")
				val := newHMACJWTService(wrongSecret, lifetime, time.Hour, fixedClock(fixedTime))
				return val, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				return newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token used as access token",
			setupFunc: func() (JWTService, string) {
				svc := newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime))
				token, _ := svc.GenerateRefreshToken(context.Background(), "alice")
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "unsigned token",
			setupFunc: func() (JWTService, string) {
				claims := jwtCustomClaims{
					TokenType: TokenTypeAccess,
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "alice",
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				return newHMACJWTService(testSecret, lifetime, time.Hour, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Username)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	refreshLifetime := 24 * time.Hour
	svc := newHMACJWTService(testSecret, time.Hour, refreshLifetime, fixedClock(fixedTime))

	refresh, err := svc.GenerateRefreshToken(context.Background(), "bob")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, fixedTime.Add(refreshLifetime).Unix(), claims.ExpiresAt.Unix())

	access, err := svc.GenerateToken(context.Background(), "bob")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	later := newHMACJWTService(testSecret, time.Hour, refreshLifetime, fixedClock(fixedTime.Add(refreshLifetime+time.Hour)))
	_, err = later.ValidateRefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)

	_, err = svc.ValidateRefreshToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
