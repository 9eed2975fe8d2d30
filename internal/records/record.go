package records

import (
	"sort"
	"time"
)

// TimestampLayout is the key format of a Document: local wall time with microsecond resolution.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Submission is a single decoded form post, field name to value.
type Submission map[string]string

// Document is the entire persisted state of the store keyed by the time each Submission was stored.
type Document map[string]Submission

// Entry is a Submission paired with the key it is stored under.
type Entry struct {
	When   string
	Fields Submission
}

// Entries lists the document in key order, which is chronological given TimestampLayout.
func (d Document) Entries() []Entry {
	out := make([]Entry, 0, len(d))
	for when, fields := range d {
		out = append(out, Entry{When: when, Fields: fields})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].When < out[j].When
	})
	return out
}

// nextFreeKey formats when as a key, stepping forward a microsecond at a time until the key is unused.
func (d Document) nextFreeKey(when time.Time) (key string, collided bool) {
	key = when.Format(TimestampLayout)
	for {
		if _, taken := d[key]; !taken {
			return key, collided
		}
		collided = true
		when = when.Add(time.Microsecond)
		key = when.Format(TimestampLayout)
	}
}
