package logstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondaryLogReplicateDedupesById(t *testing.T) {
	log := NewSecondaryLog()

	err := log.Replicate(Entry{ID: 0, Message: "a", Timestamp: 1})
	require.NoError(t, err)

	// Replaying the same id is a no-op, not an error.
	err = log.Replicate(Entry{ID: 0, Message: "a-retransmit", Timestamp: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, log.Len())
	snap := log.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "a", snap[0].Message)
}

func TestSecondaryLogSnapshotOrdersAscendingAndToleratesHoles(t *testing.T) {
	log := NewSecondaryLog()
	require.NoError(t, log.Replicate(Entry{ID: 2, Message: "c"}))
	require.NoError(t, log.Replicate(Entry{ID: 0, Message: "a"}))

	snap := log.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, uint64(0), snap[0].ID)
	assert.Equal(t, uint64(2), snap[1].ID)
}
