package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/service"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// LogoutMessage is the acknowledgment returned by Logout.
const LogoutMessage = "Logout successful"

// TokenPair is the result of a successful register, login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login and token exchange.
type AuthService interface {
	// Register creates a user holding the given priority and signs tokens for it.
	// Fails with service.ErrDuplicateUsername or service.ErrPriorityNotFound.
	Register(ctx context.Context, username, password string, priorityID int64) (*TokenPair, error)

	// Login checks the credentials. Unknown users and wrong passwords both
	// fail with ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// CurrentUser resolves the user an access token was issued to.
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Logout acknowledges a logout. Tokens are stateless and stay valid
	// until they expire.
	Logout(ctx context.Context) string
}

// AuthServiceImpl implements AuthService on top of the user and priority stores.
type AuthServiceImpl struct {
	users      store.UserStore
	priorities store.PriorityStore
	tx         store.Transactor
	jwt        JWTService
	verifier   PasswordVerifier
	logger     *slog.Logger
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	users store.UserStore,
	priorities store.PriorityStore,
	tx store.Transactor,
	jwtService JWTService,
	verifier PasswordVerifier,
	logger *slog.Logger,
) *AuthServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		users:      users,
		priorities: priorities,
		tx:         tx,
		jwt:        jwtService,
		verifier:   verifier,
		logger:     logger.With("component", "auth_service"),
	}
}

// Register implements AuthService.
func (s *AuthServiceImpl) Register(
	ctx context.Context,
	username, password string,
	priorityID int64,
) (*TokenPair, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	user.PriorityID = &priorityID

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		_, err := users.GetByUsername(ctx, user.Username)
		switch {
		case err == nil:
			return service.ErrDuplicateUsername
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}

		if _, err := s.priorities.WithTx(tx).GetByID(ctx, priorityID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return service.ErrPriorityNotFound
			}
			return fmt.Errorf("failed to load priority: %w", err)
		}

		if err := users.Create(ctx, user); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicate):
				return service.ErrDuplicateUsername
			case errors.Is(err, store.ErrInvalidEntity):
				// the priority was deleted between the check and the insert
				return service.ErrPriorityNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) || errors.Is(err, service.ErrPriorityNotFound) {
			s.logger.Debug("registration rejected", "error", err, "username", user.Username)
		} else {
			s.logger.Error("failed to register user", "error", err, "username", user.Username)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "priority_id", priorityID)
	return s.issueTokens(ctx, user.Username)
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("login attempt for unknown user")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for login", "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.Username)
}

// CurrentUser implements AuthService. A valid token for a deleted user is
// reported as ErrInvalidToken.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.jwt.ValidateToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.lookupTokenUser(ctx, claims.Username, ErrInvalidToken)
}

// Refresh implements AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.lookupTokenUser(ctx, claims.Username, ErrInvalidRefreshToken)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user.Username)
}

// Logout implements AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context) string {
	return LogoutMessage
}

func (s *AuthServiceImpl) lookupTokenUser(ctx context.Context, username string, missing error) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("token subject no longer exists", "username", username)
			return nil, missing
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, username string) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
