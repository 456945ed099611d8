package logstore

import (
	"errors"
	"sort"
	"sync"
)

// ErrIncompleteEntry describes a wire entry that is missing required
// fields (C1's BadRequest). The secondary's /replicate handler reports
// it; SecondaryLog.Replicate itself never returns it.
var ErrIncompleteEntry = errors.New("logstore: replicate request missing id/message/timestamp")

// SecondaryLog is one secondary's view of the replicated log (C1).
//
// The teacher's original secondary storage (internal/store/store.go's
// map[string]Value, and the Python source's UniqueMinHeap) used a
// priority queue keyed by id because senders could in principle
// deliver out of order. Per the spec's redesign note in §9, the
// delivery pipeline (C3) already guarantees strict ascending,
// at-most-once-successful delivery per secondary, so a plain
// id-indexed map with a dedup check is sufficient — no heap needed.
type SecondaryLog struct {
	mu      sync.Mutex
	entries map[uint64]Entry
}

// NewSecondaryLog returns an empty secondary log.
func NewSecondaryLog() *SecondaryLog {
	return &SecondaryLog{entries: make(map[uint64]Entry)}
}

// Replicate inserts entry if its id hasn't been seen before. Replaying
// an already-seen id is a no-op and still reports success — replicate
// is idempotent in the entry id (P7).
func (s *SecondaryLog) Replicate(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[entry.ID]; ok {
		return nil // duplicate delivery, silently deduped
	}
	s.entries[entry.ID] = entry
	return nil
}

// Snapshot returns the stored entries in ascending id order. Ids that
// have not arrived yet are simply absent — the sequence may contain
// holes until delivery catches up (P4 allows this transiently).
func (s *SecondaryLog) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint64, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entries[id])
	}
	return out
}

// Len reports how many distinct ids have been stored.
func (s *SecondaryLog) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
