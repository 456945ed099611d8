package logstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWALAppendAndReadAllRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primary.log")

	wal, err := OpenWAL(path)
	require.NoError(t, err)

	require.NoError(t, wal.Append(Entry{ID: 0, Message: "one", Timestamp: 1}))
	require.NoError(t, wal.Append(Entry{ID: 1, Message: "two", Timestamp: 2}))
	require.NoError(t, wal.Close())

	wal, err = OpenWAL(path)
	require.NoError(t, err)
	defer wal.Close()

	entries, err := wal.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, "two", entries[1].Message)
}
