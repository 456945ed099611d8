// Package primary implements C7, the primary's append path, wiring
// together the log, the ack tracker, the quorum gate, and one
// delivery pipeline per secondary.
//
// This collapses the teacher's two competing append-path
// implementations — internal/cluster/node.go's executeWriteQuorum
// (busy goroutine fan-out with a WaitGroup) and
// internal/cluster/replicator.go's ReplicateWrite (channel-based
// fan-out with a 5s hard timeout) — into the one canonical design the
// spec calls for: a single serializing append lock, no client-side
// deadline for write_concern > 1, and per-secondary pipelines that
// deliver independently of the client-facing request.
package primary

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"replicated-log/internal/health"
	"replicated-log/internal/logstore"
	"replicated-log/internal/replication"
)

// Clock is injected so tests can control timestamps; defaults to
// time.Now in production.
type Clock func() time.Time

// Primary owns the replicated log and every secondary's delivery
// pipeline and health descriptor.
type Primary struct {
	log         *logstore.PrimaryLog
	acks        *replication.AckTracker
	descriptors []*health.Descriptor
	wal         *logstore.WAL
	clock       Clock

	appendMu sync.Mutex
}

// New constructs a Primary. descriptors must be in the same order the
// caller used to build the delivery pipelines; Append treats
// len(descriptors) as the configured secondary count for write_concern
// range validation.
func New(log *logstore.PrimaryLog, acks *replication.AckTracker, descriptors []*health.Descriptor, wal *logstore.WAL) *Primary {
	return &Primary{log: log, acks: acks, descriptors: descriptors, wal: wal, clock: time.Now}
}

// Append is C7's append(message, write_concern) operation.
func (p *Primary) Append(message string, writeConcern int) (logstore.Entry, error) {
	if !health.Quorum(p.descriptors) {
		return logstore.Entry{}, ErrNoQuorum
	}

	if message == "" {
		return logstore.Entry{}, ErrBadRequest
	}
	maxWriteConcern := 1 + len(p.descriptors)
	if writeConcern < 1 || writeConcern > maxWriteConcern {
		return logstore.Entry{}, ErrBadRequest
	}

	p.appendMu.Lock()
	timestamp := float64(p.clock().UnixNano()) / 1e9
	// appendMu serializes every caller into p.log.Append, so p.log.Len()
	// here is exactly the id Append is about to assign. The ack slot must
	// exist before the entry becomes visible to delivery pipelines: once
	// Append returns, it has already broadcast growth, and a pipeline can
	// race ahead and ack the new id before a slot registered afterward
	// would catch it — AckTracker.OnAck silently drops acks for unknown
	// ids, and write_concern > 1 appends have no timeout to save them.
	nextID := p.log.Len()
	p.acks.NewSlot(nextID, writeConcern-1)
	entry := p.log.Append(message, timestamp)
	if p.wal != nil {
		_ = p.wal.Append(entry) // best-effort local durability, see §10.4
	}
	p.appendMu.Unlock()

	if writeConcern == 1 {
		return entry, nil
	}

	p.acks.WaitFor(entry.ID)
	return entry, nil
}

// ReadAll is C7's read_all() operation: a snapshot of the primary log
// in id order.
func (p *Primary) ReadAll() []logstore.Entry {
	return p.log.Snapshot()
}

// Health reports the current health of every secondary and whether
// quorum currently holds, for the /health endpoint.
func (p *Primary) Health() (secondaries map[string]health.State, quorum bool) {
	secondaries = make(map[string]health.State, len(p.descriptors))
	for _, d := range p.descriptors {
		secondaries[d.Endpoint] = d.State()
	}
	quorum = health.Quorum(p.descriptors)
	return secondaries, quorum
}

// Cluster bundles a running Primary with its background workers
// (delivery pipelines, heartbeat detector) so main() has one thing to
// start and stop.
type Cluster struct {
	Primary   *Primary
	Detector  *health.Detector
	Pipelines []*replication.Pipeline
}

// Run starts the heartbeat detector and every delivery pipeline, and
// blocks until ctx is canceled.
func (c *Cluster) Run(ctx context.Context, log zerolog.Logger) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Detector.Run(ctx)
	}()

	for _, pipe := range c.Pipelines {
		pipe := pipe
		wg.Add(1)
		go func() {
			defer wg.Done()
			pipe.Run(ctx)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("stopping replication workers")
	wg.Wait()
}
