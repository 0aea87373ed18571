package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// UserUpdate carries the optional fields of a user update.
type UserUpdate struct {
	// Password, when set, replaces the stored password hash.
	Password *string
}

// UserService provides user-related operations. Users are addressed by username.
type UserService interface {
	// CreateUser fails with ErrDuplicateUsername when the username is taken.
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)

	// GetAllUsers returns every user in insertion order.
	GetAllUsers(ctx context.Context) ([]*domain.User, error)

	// GetUserByUsername fails with ErrNotFound for an unknown username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdateUser applies update. Fails with ErrNotFound for an unknown username.
	UpdateUser(ctx context.Context, username string, update UserUpdate) (*domain.User, error)

	// DeleteUser fails with ErrNotFound for an unknown username.
	DeleteUser(ctx context.Context, username string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	tx        store.Transactor
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, tx store.Transactor, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		tx:        tx,
		logger:    logger.With("component", "user_service"),
	}
}

// CreateUser creates a new user. The store hashes the password.
func (s *UserServiceImpl) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		_, err := txStore.GetByUsername(ctx, user.Username)
		switch {
		case err == nil:
			return ErrDuplicateUsername
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}

		return translateStoreError(txStore.Create(ctx, user), nil, ErrDuplicateUsername)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.logger.Debug("attempted to create user with existing username",
				"username", user.Username)
		} else {
			s.logger.Error("failed to save user to database",
				"error", err,
				"username", user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// GetAllUsers implements UserService.
func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByUsername implements UserService.
func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", translateStoreError(err, ErrNotFound, nil))
	}
	return user, nil
}

// UpdateUser retrieves the complete user, applies the update and writes it
// back in one transaction.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	username string,
	update UserUpdate,
) (*domain.User, error) {
	var updated *domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByUsername(ctx, username)
		if err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}

		if update.Password != nil {
			if *update.Password == "" {
				return domain.ErrEmptyPassword
			}
			user.Password = *update.Password
			if err := user.Validate(); err != nil {
				return err
			}
		}

		if err := txStore.Update(ctx, user); err != nil {
			return translateStoreError(err, ErrNotFound, ErrDuplicateUsername)
		}
		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			s.logger.Debug("user update rejected", "error", err, "username", username)
		} else {
			s.logger.Error("failed to update user", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated successfully",
		"user_id", updated.ID,
		"password_changed", update.Password != nil)
	return updated, nil
}

// DeleteUser implements UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, username string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if _, err := txStore.GetByUsername(ctx, username); err != nil {
			return translateStoreError(err, ErrNotFound, nil)
		}
		return translateStoreError(txStore.Delete(ctx, username), ErrNotFound, nil)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("attempted to delete unknown user", "username", username)
		} else {
			s.logger.Error("failed to delete user", "error", err, "username", username)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted successfully", "username", username)
	return nil
}
