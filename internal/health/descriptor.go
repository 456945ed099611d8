package health

import (
	"sync"

	"replicated-log/internal/broadcast"
)

// Descriptor is the failure detector's view of one secondary (the
// Secondary Descriptor's health half — next_id_to_send lives in the
// delivery pipeline instead, since the spec requires it be owned
// exclusively by the pipeline).
//
// health and consecutiveFailures are mutated only by the Detector (C5);
// every other component — the quorum gate (C6), the delivery pipeline
// (C3), and the /health HTTP handler — only ever reads them, through
// the exported accessors below, which take the lock just like the
// teacher's Membership type does for its node map.
type Descriptor struct {
	Endpoint string

	mu                  sync.RWMutex
	state               State
	consecutiveFailures int

	// changed fires on every recorded heartbeat result, whether or not
	// the classification changed. The delivery pipeline selects on it
	// (re-checking State after each wake-up) both to
	// leave its Unhealthy-blocked wait and to abort an in-progress
	// backoff sleep the instant the node is reclassified Unhealthy.
	changed *broadcast.Gate
}

// NewDescriptor returns a Descriptor in the initial Unknown state.
func NewDescriptor(endpoint string) *Descriptor {
	return &Descriptor{Endpoint: endpoint, state: Unknown, changed: broadcast.New()}
}

// State returns the descriptor's current health classification.
func (d *Descriptor) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Changed returns the channel that fires the next time a heartbeat
// result is recorded for this descriptor, whether or not its state
// changes.
func (d *Descriptor) Changed() <-chan struct{} {
	return d.changed.C()
}

// RecordHeartbeatSuccess marks the secondary Healthy and resets its
// failure streak (C5 step 2).
func (d *Descriptor) RecordHeartbeatSuccess() {
	d.mu.Lock()
	d.state = Healthy
	d.consecutiveFailures = 0
	d.mu.Unlock()
	d.changed.Broadcast()
}

// RecordHeartbeatFailure increments the failure streak and reclassifies
// the secondary per the suspected/unhealthy thresholds (C5 step 3).
func (d *Descriptor) RecordHeartbeatFailure(suspectedThreshold, unhealthyThreshold int) {
	d.mu.Lock()
	d.consecutiveFailures++
	switch {
	case d.consecutiveFailures >= unhealthyThreshold:
		d.state = Unhealthy
	case d.consecutiveFailures >= suspectedThreshold:
		d.state = Suspected
	default:
		// Below the Suspected threshold: a single missed heartbeat
		// shouldn't flap a Healthy node back to Unknown, so the
		// classification is left as-is until a threshold is crossed.
	}
	d.mu.Unlock()
	d.changed.Broadcast()
}
