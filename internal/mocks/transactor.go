package mocks

import (
	"context"

	"github.com/phrazzld/taskdesk-api/internal/store"
)

// MockTransactor implements store.Transactor without a database.
// fn receives a nil *sql.Tx, which the in-memory stores ignore in WithTx.
type MockTransactor struct {
	// BeginErr, if set, is returned before fn runs.
	BeginErr error

	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements store.Transactor.
func (m *MockTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, nil)
}
