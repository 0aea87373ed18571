package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withTrace := SetTraceID(ctx)
	traceID := GetTraceID(withTrace)
	assert.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	assert.Empty(t, GetTraceID(ctx), "original context must stay unchanged")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestFallbackTraceID(t *testing.T) {
	id := fallbackTraceID()
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	require.NoError(t, err)
}

func TestUsernameContext(t *testing.T) {
	_, ok := UsernameFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UsernameFromContext(WithUsername(context.Background(), ""))
	assert.False(t, ok)

	username, ok := UsernameFromContext(WithUsername(context.Background(), "alice"))
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
}
