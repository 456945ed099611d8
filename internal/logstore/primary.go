package logstore

import (
	"sync"

	"replicated-log/internal/broadcast"
)

// PrimaryLog is the primary's append-only log (C7's Primary Log).
//
// Mirrors the teacher's Store: appends are serialized under a single
// exclusive lock (store.go's s.mu.Lock in Put), while reads take the
// shared read lock of the same RWMutex. Get returns an entry by value
// and Snapshot returns a fresh copy of the slice.
type PrimaryLog struct {
	mu      sync.RWMutex
	entries []Entry
	grew    *broadcast.Gate
}

// NewPrimaryLog returns an empty log.
func NewPrimaryLog() *PrimaryLog {
	return &PrimaryLog{grew: broadcast.New()}
}

// Append assigns the next contiguous id to entry and stores it. The
// caller is responsible for holding whatever higher-level append lock
// serializes concurrent callers (see primary.Primary.Append) — Append
// itself is also safe to call concurrently, since it takes its own
// lock, but the primary's id-assignment-plus-ack-slot-creation
// sequence must be atomic as a whole, which requires an outer lock.
func (l *PrimaryLog) Append(message string, timestamp float64) Entry {
	l.mu.Lock()
	entry := Entry{ID: uint64(len(l.entries)), Message: message, Timestamp: timestamp}
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	l.grew.Broadcast()
	return entry
}

// Len returns the number of entries currently stored (== the id that
// would be assigned to the next append).
func (l *PrimaryLog) Len() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.entries))
}

// Get returns the entry at id, if it has been appended yet.
func (l *PrimaryLog) Get(id uint64) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id >= uint64(len(l.entries)) {
		return Entry{}, false
	}
	return l.entries[id], true
}

// Snapshot returns a copy of the full log in id order.
func (l *PrimaryLog) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Grew returns the channel that fires every time the log grows. Used
// by delivery pipelines (C3) that have caught up and are waiting for
// new entries to send.
func (l *PrimaryLog) Grew() <-chan struct{} {
	return l.grew.C()
}
