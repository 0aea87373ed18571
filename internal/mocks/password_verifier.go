package mocks

import (
	"errors"

	"github.com/phrazzld/taskdesk-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by MockPasswordVerifier when ShouldSucceed is false.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// Recorded arguments of the last Compare call
	LastHashedPassword string
	LastPassword       string
	CompareCallCount   int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.LastHashedPassword = hashedPassword
	m.LastPassword = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}
