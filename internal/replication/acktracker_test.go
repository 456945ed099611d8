package replication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAckTrackerZeroRequiredIsImmediatelySatisfied(t *testing.T) {
	tracker := NewAckTracker()
	tracker.NewSlot(0, 0)

	done := make(chan struct{})
	go func() {
		tracker.WaitFor(0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitFor should return immediately when required <= 0")
	}
}

func TestAckTrackerWaitsForRequiredDistinctAcks(t *testing.T) {
	tracker := NewAckTracker()
	tracker.NewSlot(7, 2)

	done := make(chan struct{})
	go func() {
		tracker.WaitFor(7)
		close(done)
	}()

	tracker.OnAck(7, "secondary-a")
	select {
	case <-done:
		t.Fatal("should still be waiting after only one ack")
	case <-time.After(20 * time.Millisecond):
	}

	// Duplicate acks from the same endpoint don't count twice.
	tracker.OnAck(7, "secondary-a")
	select {
	case <-done:
		t.Fatal("duplicate ack must not satisfy the slot")
	case <-time.After(20 * time.Millisecond):
	}

	tracker.OnAck(7, "secondary-b")
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected WaitFor to return after the second distinct ack")
	}
}

func TestAckTrackerUnregisteredIdIsNoop(t *testing.T) {
	tracker := NewAckTracker()
	assert.NotPanics(t, func() {
		tracker.OnAck(99, "secondary-a")
		tracker.WaitFor(99)
	})
}
