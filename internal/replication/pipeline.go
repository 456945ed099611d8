package replication

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"replicated-log/internal/health"
	"replicated-log/internal/logstore"
)

// PipelineConfig tunes one secondary's delivery pipeline.
type PipelineConfig struct {
	ReplicationTimeout time.Duration
	BackoffBase        time.Duration
	BackoffMax         time.Duration
}

// Pipeline is C3: the per-secondary delivery loop. next_id_to_send and
// the backoff attempt counter are fields on this struct alone — no
// other goroutine touches them, per the spec's ownership rule.
type Pipeline struct {
	cfg        PipelineConfig
	descriptor *health.Descriptor
	log        *logstore.PrimaryLog
	client     *Client
	acks       *AckTracker
	zlog       zerolog.Logger

	nextID  uint64
	attempt int
}

// NewPipeline constructs a Pipeline for one secondary.
func NewPipeline(cfg PipelineConfig, descriptor *health.Descriptor, primaryLog *logstore.PrimaryLog, client *Client, acks *AckTracker, zlog zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		descriptor: descriptor,
		log:        primaryLog,
		client:     client,
		acks:       acks,
		zlog:       zlog.With().Str("component", "pipeline").Str("secondary", descriptor.Endpoint).Logger(),
	}
}

// Run executes the main loop described in §4.2 until ctx is canceled.
func (p *Pipeline) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		// Step 1: block indefinitely while Unhealthy.
		if p.descriptor.State() == health.Unhealthy {
			changed := p.descriptor.Changed()
			select {
			case <-changed:
				continue
			case <-ctx.Done():
				return
			}
		}

		// Step 2: drain everything the primary log currently has.
		if !p.drain(ctx) {
			return
		}

		// Step 3: caught up — wait for the log to grow or health to
		// change, whichever comes first.
		grew := p.log.Grew()
		changed := p.descriptor.Changed()
		select {
		case <-grew:
		case <-changed:
		case <-ctx.Done():
			return
		}
	}
}

// drain sends entries starting at p.nextID until the pipeline either
// catches up with the log or must return to the top of the loop
// (health changed to Unhealthy, or ctx canceled). Returns false iff the
// caller should stop entirely (context canceled).
func (p *Pipeline) drain(ctx context.Context) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		if p.descriptor.State() == health.Unhealthy {
			return true // back to step 1
		}

		length := p.log.Len()
		if p.nextID >= length {
			return true // caught up, go wait in step 3
		}

		entry, ok := p.log.Get(p.nextID)
		if !ok {
			return true
		}

		result := p.client.Send(ctx, p.descriptor.Endpoint, entry, p.cfg.ReplicationTimeout)
		if result.Outcome == Success {
			p.acks.OnAck(entry.ID, p.descriptor.Endpoint)
			p.nextID++
			p.attempt = 0
			continue
		}

		p.zlog.Warn().Uint64("entry_id", entry.ID).Err(result.Err).Msg("replicate attempt failed, backing off")
		p.attempt++
		if !p.backoffOrAbort(ctx) {
			return false
		}
		// Loop back around: if health flipped to Unhealthy during the
		// sleep, the top-of-loop check above sends us back to step 1.
	}
}

// backoffOrAbort sleeps for the exponential backoff delay for the
// current attempt, but wakes early if the secondary is reclassified
// Unhealthy (the "abort the sleep" clause in §4.2 step 2d) or ctx is
// canceled. Returns false only when the caller should stop entirely.
func (p *Pipeline) backoffOrAbort(ctx context.Context) bool {
	delay := backoffDelay(p.attempt, p.cfg.BackoffBase, p.cfg.BackoffMax)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		changed := p.descriptor.Changed()
		if p.descriptor.State() == health.Unhealthy {
			return true
		}
		select {
		case <-timer.C:
			return true
		case <-changed:
			// A heartbeat result was recorded; re-check the state.
		case <-ctx.Done():
			return false
		}
	}
}

// backoffDelay computes min(base * 2^(attempt-1), max).
func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	if attempt <= 1 {
		if base > max {
			return max
		}
		return base
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	return delay
}
