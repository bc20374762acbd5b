package account

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

// Entry is one applied transaction in a History. Entries are handed out by value.
type Entry struct {
	ID        uuid.UUID
	Kind      Kind
	Amount    float64
	Timestamp time.Time
}

// History is the append-only log of transactions applied to one account.
type History struct {
	entries []Entry
	now     func() time.Time
}

// NewHistory returns an empty history stamped by the wall clock.
func NewHistory() *History {
	return NewHistoryWithClock(time.Now)
}

// NewHistoryWithClock returns an empty history stamped by now.
func NewHistoryWithClock(now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{now: now}
}

// Record appends t with the time of the call and returns the stored entry.
func (h *History) Record(t Transaction) Entry {
	e := Entry{
		ID:        uuid.New(),
		Kind:      t.Kind(),
		Amount:    t.Amount(),
		Timestamp: h.now(),
	}
	h.entries = append(h.entries, e)
	return e
}

// Entries yields the log in insertion order. The sequence can be ranged over
// any number of times.
func (h *History) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range h.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }

// Count returns how many entries of kind were recorded at or after since.
// A zero since counts the whole log.
func (h *History) Count(kind Kind, since time.Time) int {
	n := 0
	for _, e := range h.entries {
		if e.Kind != kind {
			continue
		}
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		n++
	}
	return n
}

// Now returns the history clock reading.
func (h *History) Now() time.Time { return h.now() }
