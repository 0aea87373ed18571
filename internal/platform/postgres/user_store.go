package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/domain"
	"github.com/phrazzld/taskdesk-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// A bcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s
	}
	return &PostgresUserStore{db: tx, bcryptCost: s.bcryptCost, logger: s.logger}
}

// hashPassword replaces the user's plaintext password with its bcrypt hash.
func (s *PostgresUserStore) hashPassword(user *domain.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	return nil
}

// Create implements store.UserStore.Create.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if user.Password == "" {
		return invalidEntity(domain.ErrEmptyPassword)
	}
	if err := user.Validate(); err != nil {
		return invalidEntity(err)
	}
	if err := s.hashPassword(user); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, priority_id) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.HashedPassword, nullInt64(user.PriorityID),
	).Scan(&user.ID)
	if err != nil {
		s.logger.Debug("failed to insert user", slog.String("username", user.Username), slog.Any("error", err))
		return mapEntityError(err, store.ErrUserNotFound, store.ErrUsernameExists)
	}

	s.logger.Debug("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetAll implements store.UserStore.GetAll.
func (s *PostgresUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password, priority_id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var (
			u          domain.User
			priorityID sql.NullInt64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.HashedPassword, &priorityID); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.PriorityID = int64Ptr(priorityID)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u            domain.User
		priorityID   sql.NullInt64
		priorityName sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.password, u.priority_id, p.name
		FROM users u
		LEFT JOIN priorities p ON p.id = u.priority_id
		WHERE u.username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.HashedPassword, &priorityID, &priorityName)
	if err != nil {
		return nil, mapEntityError(err, store.ErrUserNotFound, nil)
	}

	u.PriorityID = int64Ptr(priorityID)
	if priorityID.Valid && priorityName.Valid {
		u.Priority = &domain.Priority{ID: priorityID.Int64, Name: priorityName.String}
	}
	return &u, nil
}

// Update implements store.UserStore.Update.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return invalidEntity(err)
	}
	if user.Password != "" {
		if err := s.hashPassword(user); err != nil {
			return err
		}
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = $1, priority_id = $2 WHERE id = $3`,
		user.HashedPassword, nullInt64(user.PriorityID), user.ID,
	)
	if err != nil {
		return mapEntityError(err, store.ErrUserNotFound, store.ErrUsernameExists)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, username string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
