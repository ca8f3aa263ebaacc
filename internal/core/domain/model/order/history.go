package order

import "time"

// HistoryEntry records that the order entered a status at a point in time.
type HistoryEntry struct {
	status    Status
	changedAt time.Time
}

// NewHistoryEntry builds an entry for a restored order. status must be known.
func NewHistoryEntry(status Status, changedAt time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{status: status, changedAt: changedAt}, nil
}

// Status returns the status the order entered.
func (e HistoryEntry) Status() Status {
	return e.status
}

// ChangedAt returns when the order entered the status.
func (e HistoryEntry) ChangedAt() time.Time {
	return e.changedAt
}

// ChangedAfter reports whether the entry is strictly later than t.
func (e HistoryEntry) ChangedAfter(t time.Time) bool {
	return e.changedAt.After(t)
}

// ChangedBefore reports whether the entry is strictly earlier than t.
func (e HistoryEntry) ChangedBefore(t time.Time) bool {
	return e.changedAt.Before(t)
}

// IsTerminal reports whether the entry records a final status.
func (e HistoryEntry) IsTerminal() bool {
	return e.status.IsTerminal()
}

// History is the append-only status log of an order. Entries are never edited
// or removed and readers only ever receive copies.
type History struct {
	entries []HistoryEntry
}

// Append records a new entry. It is the only way to change a History.
func (h *History) Append(status Status, at time.Time) {
	h.entries = append(h.entries, HistoryEntry{status: status, changedAt: at})
}

// Entries returns a copy of the log, oldest first.
func (h History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Last returns the most recent entry; ok is false for an empty log.
func (h History) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h History) Len() int {
	return len(h.entries)
}

// Statuses lists the recorded statuses in the order they were entered.
func (h History) Statuses() []Status {
	out := make([]Status, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.status)
	}
	return out
}

func (h History) clone() History {
	return History{entries: h.Entries()}
}
