package session

import (
	"time"

	"github.com/fakeyudi/trail/internal/event"
)

// Span summarises the events sharing one session identifier.
type Span struct {
	ID     string    `json:"id" yaml:"id"`
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Events int       `json:"events" yaml:"events"`
}

// Duration is the time between the first and last event of the span.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Group partitions events by session identifier. Events without one are
// skipped. Spans come back in order of first appearance.
//
// Start and End are the first and last events of each group in input order;
// events are not re-sorted, so callers must pass them chronologically.
func Group(events []event.Event) []Span {
	index := make(map[string]int)
	var spans []Span
	for _, ev := range events {
		if ev.SessionID == "" {
			continue
		}
		i, ok := index[ev.SessionID]
		if !ok {
			index[ev.SessionID] = len(spans)
			spans = append(spans, Span{ID: ev.SessionID, Start: ev.Timestamp, End: ev.Timestamp, Events: 1})
			continue
		}
		spans[i].End = ev.Timestamp
		spans[i].Events++
	}
	return spans
}
