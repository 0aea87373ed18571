package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxUsernameLength mirrors the width of users.username.
	MaxUsernameLength = 80

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// User validation errors
var (
	ErrEmptyUsername   = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong = fmt.Errorf("%w: username must be at most %d characters", ErrValidation, MaxUsernameLength)
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
)

// User represents an account. Usernames, not numeric IDs, are the external
// identifier for this resource.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"-"` // Plaintext password, only set during registration/updates
	HashedPassword string `json:"-"`

	// PriorityID is the user's access level; nil when none is assigned.
	PriorityID *int64 `json:"priority_id,omitempty"`

	// Priority is the resolved priority row, populated by store reads.
	Priority *Priority `json:"-"`
}

// NewUser creates an unsaved User with the given username and plaintext
// password. The store is responsible for hashing the password.
func NewUser(username, password string) (*User, error) {
	user := &User{
		Username: strings.TrimSpace(username),
		Password: password,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// A user must carry either a plaintext password (about to be hashed) or a hash.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
		return nil
	}

	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

// PriorityName returns the name of the user's priority, or "" when the user
// has none assigned or it was not loaded.
func (u *User) PriorityName() string {
	if u == nil || u.Priority == nil {
		return ""
	}
	return u.Priority.Name
}
