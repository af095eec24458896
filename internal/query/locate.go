// Package query answers questions over an in-memory timeline: where was I,
// what did I run, and what happened in a given window.
package query

import (
	"errors"
	"time"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

// MaxStaleness is the oldest a location may be and still count as where the
// user was at the target time.
const MaxStaleness = 24 * time.Hour

// ErrNoHistory is returned by Locate when no event with a directory exists at
// or before the target.
var ErrNoHistory = errors.New("no activity found for that time")

// StaleError is returned by Locate when the closest location is older than
// MaxStaleness.
type StaleError struct {
	Staleness time.Duration
	Match     Match
}

func (e *StaleError) Error() string {
	return "no recent activity found for that time (closest match was " + timeexpr.FormatDuration(e.Staleness) + " ago)"
}

// Match is the location Locate settled on.
type Match struct {
	Event     event.Event
	Staleness time.Duration
}

// Locate finds the latest event carrying a working directory at or before
// target. On equal timestamps the earliest such event in the slice wins.
func Locate(events []event.Event, target time.Time) (Match, error) {
	best := -1
	for i, ev := range events {
		if ev.Cwd == "" || ev.Timestamp.After(target) {
			continue
		}
		if best < 0 || ev.Timestamp.After(events[best].Timestamp) {
			best = i
		}
	}
	if best < 0 {
		return Match{}, ErrNoHistory
	}

	m := Match{Event: events[best], Staleness: target.Sub(events[best].Timestamp)}
	if m.Staleness > MaxStaleness {
		return Match{}, &StaleError{Staleness: m.Staleness, Match: m}
	}
	return m, nil
}
