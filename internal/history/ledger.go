// Package history records each executed query for later inspection.
package history

import "time"

// Entry describes one executed query
type Entry struct {
	SQL        string
	ExecutedAt time.Time
	RowCount   int
}

// Ledger is an append-only, in-memory sequence of entries. It lives for the
// process lifetime and is never persisted. Calls are serialized by the
// session, so no locking is needed; a concurrent caller must give each
// session its own ledger.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records an entry in execution order
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns the recorded entries in insertion order. The returned
// slice is a copy; the ledger itself cannot be mutated through it.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Len returns the number of recorded entries
func (l *Ledger) Len() int {
	return len(l.entries)
}
