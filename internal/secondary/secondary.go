// Package secondary wires the secondary-side log storage (C1) into a
// process: a replicate endpoint with an optional artificial delay, and
// a read endpoint.
package secondary

import (
	"time"

	"replicated-log/internal/logstore"
)

// Secondary holds one secondary node's state.
type Secondary struct {
	log   *logstore.SecondaryLog
	delay time.Duration
}

// New constructs a Secondary. delay, if positive, is slept before
// acknowledging each /replicate call, simulating a slow replica for
// testing (SECONDARY_DELAY in §6).
func New(delay time.Duration) *Secondary {
	return &Secondary{log: logstore.NewSecondaryLog(), delay: delay}
}

// Replicate stores entry, sleeping the configured delay first.
func (s *Secondary) Replicate(entry logstore.Entry) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.log.Replicate(entry)
}

// ReadAll returns the stored entries in ascending id order.
func (s *Secondary) ReadAll() []logstore.Entry {
	return s.log.Snapshot()
}
