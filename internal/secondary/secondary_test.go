package secondary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replicated-log/internal/logstore"
)

func TestSecondaryReplicateAndReadAll(t *testing.T) {
	s := New(0)

	require.NoError(t, s.Replicate(logstore.Entry{ID: 0, Message: "a", Timestamp: 1}))
	require.NoError(t, s.Replicate(logstore.Entry{ID: 1, Message: "b", Timestamp: 2}))

	entries := s.ReadAll()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)
}

func TestSecondaryReplicateAppliesConfiguredDelay(t *testing.T) {
	s := New(30 * time.Millisecond)

	start := time.Now()
	require.NoError(t, s.Replicate(logstore.Entry{ID: 0, Message: "a"}))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSecondaryReplicateIsIdempotent(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Replicate(logstore.Entry{ID: 0, Message: "a"}))
	require.NoError(t, s.Replicate(logstore.Entry{ID: 0, Message: "a-retry"}))

	entries := s.ReadAll()
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Message)
}
