package logstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryLogAppendAssignsSequentialIds(t *testing.T) {
	log := NewPrimaryLog()

	a := log.Append("first", 1.0)
	b := log.Append("second", 2.0)

	assert.Equal(t, uint64(0), a.ID)
	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, uint64(2), log.Len())
}

func TestPrimaryLogGet(t *testing.T) {
	log := NewPrimaryLog()
	entry := log.Append("hello", 1.0)

	got, ok := log.Get(entry.ID)
	require.True(t, ok)
	assert.Equal(t, entry, got)

	_, ok = log.Get(5)
	assert.False(t, ok)
}

func TestPrimaryLogSnapshotIsACopy(t *testing.T) {
	log := NewPrimaryLog()
	log.Append("one", 1.0)

	snap := log.Snapshot()
	snap[0].Message = "mutated"

	got, _ := log.Get(0)
	assert.Equal(t, "one", got.Message)
}

func TestPrimaryLogGrewBroadcastsOnAppend(t *testing.T) {
	log := NewPrimaryLog()
	grew := log.Grew()

	go log.Append("x", 1.0)

	select {
	case <-grew:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Grew to fire")
	}
}
