package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorStartsUnknown(t *testing.T) {
	d := NewDescriptor("http://secondary:8081")
	assert.Equal(t, Unknown, d.State())
}

func TestRecordHeartbeatSuccessMarksHealthy(t *testing.T) {
	d := NewDescriptor("http://secondary:8081")
	d.RecordHeartbeatSuccess()
	assert.Equal(t, Healthy, d.State())
}

func TestRecordHeartbeatFailureThresholds(t *testing.T) {
	d := NewDescriptor("http://secondary:8081")
	d.RecordHeartbeatSuccess()

	// Below the suspected threshold, a single miss doesn't flap the
	// classification away from Healthy.
	d.RecordHeartbeatFailure(3, 5)
	assert.Equal(t, Healthy, d.State())

	d.RecordHeartbeatFailure(3, 5)
	d.RecordHeartbeatFailure(3, 5)
	assert.Equal(t, Suspected, d.State())

	d.RecordHeartbeatFailure(3, 5)
	d.RecordHeartbeatFailure(3, 5)
	assert.Equal(t, Unhealthy, d.State())
}

func TestRecordHeartbeatSuccessResetsFailureStreak(t *testing.T) {
	d := NewDescriptor("http://secondary:8081")
	d.RecordHeartbeatFailure(2, 4)
	d.RecordHeartbeatFailure(2, 4)
	assert.Equal(t, Suspected, d.State())

	d.RecordHeartbeatSuccess()
	assert.Equal(t, Healthy, d.State())

	// The failure streak reset, so a single subsequent failure should
	// not immediately reclassify as Suspected.
	d.RecordHeartbeatFailure(2, 4)
	assert.Equal(t, Healthy, d.State())
}

func TestDescriptorChangedFiresOnTransition(t *testing.T) {
	d := NewDescriptor("http://secondary:8081")
	changed := d.Changed()

	go d.RecordHeartbeatSuccess()

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Changed to fire")
	}
}
