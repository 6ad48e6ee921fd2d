package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withGenerated := SetTraceID(ctx, "")
	traceID := GetTraceID(withGenerated)
	assert.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	withGiven := SetTraceID(ctx, "req-1")
	assert.Equal(t, "req-1", GetTraceID(withGiven))

	assert.Empty(t, GetTraceID(ctx), "original context is unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := NewTraceID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSessionID(t *testing.T) {
	_, ok := GetSessionID(context.Background())
	assert.False(t, ok)

	_, ok = GetSessionID(WithSessionID(context.Background(), uuid.Nil))
	assert.False(t, ok, "nil id is treated as missing")

	id := uuid.New()
	got, ok := GetSessionID(WithSessionID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
