package replication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replicated-log/internal/health"
	"replicated-log/internal/logstore"
)

func TestBackoffDelay(t *testing.T) {
	base := time.Second
	max := 10 * time.Second

	assert.Equal(t, base, backoffDelay(1, base, max))
	assert.Equal(t, 2*time.Second, backoffDelay(2, base, max))
	assert.Equal(t, 4*time.Second, backoffDelay(3, base, max))
	assert.Equal(t, max, backoffDelay(10, base, max))
}

func TestPipelineDeliversAppendedEntriesInOrder(t *testing.T) {
	var mu sync.Mutex
	var received []logstore.Entry

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e logstore.Entry
		_ = json.NewDecoder(r.Body).Decode(&e)
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	primaryLog := logstore.NewPrimaryLog()
	descriptor := health.NewDescriptor(srv.URL)
	descriptor.RecordHeartbeatSuccess()
	acks := NewAckTracker()
	client := NewClient()

	pipe := NewPipeline(PipelineConfig{
		ReplicationTimeout: time.Second,
		BackoffBase:        10 * time.Millisecond,
		BackoffMax:         100 * time.Millisecond,
	}, descriptor, primaryLog, client, acks, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pipe.Run(ctx)

	acks.NewSlot(0, 1)
	acks.NewSlot(1, 1)
	primaryLog.Append("first", 1)
	primaryLog.Append("second", 2)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "first", received[0].Message)
	assert.Equal(t, "second", received[1].Message)
}

func TestPipelineBlocksWhileUnhealthy(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	primaryLog := logstore.NewPrimaryLog()
	descriptor := health.NewDescriptor(srv.URL)
	descriptor.RecordHeartbeatFailure(1, 1) // immediately Unhealthy
	acks := NewAckTracker()
	client := NewClient()

	pipe := NewPipeline(PipelineConfig{
		ReplicationTimeout: time.Second,
		BackoffBase:        10 * time.Millisecond,
		BackoffMax:         50 * time.Millisecond,
	}, descriptor, primaryLog, client, acks, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pipe.Run(ctx)

	acks.NewSlot(0, 1)
	primaryLog.Append("queued", 1)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), hits.Load(), "pipeline must not deliver while Unhealthy")

	descriptor.RecordHeartbeatSuccess()
	require.Eventually(t, func() bool { return hits.Load() > 0 }, time.Second, 5*time.Millisecond)
}
