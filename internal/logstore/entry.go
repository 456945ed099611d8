// Package logstore holds the replicated log's data model: the
// append-only Primary Log owned by the primary, and the deduplicating
// id-ordered Secondary Log owned by each secondary.
package logstore

// Entry is one record in the replicated log. It is immutable once
// created; ids are contiguous starting at 0 on the primary.
type Entry struct {
	ID        uint64  `json:"id"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}
