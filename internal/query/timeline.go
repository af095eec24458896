package query

import (
	"time"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

// DefaultTimelineLimit is the number of entries timeline shows by default.
const DefaultTimelineLimit = 50

// Window restricts a timeline to one calendar day. The zero Window is
// unrestricted.
type Window struct {
	Date *timeexpr.Date
}

// Day returns a Window over d.
func Day(d timeexpr.Date) Window {
	return Window{Date: &d}
}

// TodayWindow returns a Window over the local day containing now.
func TodayWindow(now time.Time, loc *time.Location) Window {
	return Day(timeexpr.Today(now, loc))
}

// YesterdayWindow returns a Window over the local day before now.
func YesterdayWindow(now time.Time, loc *time.Location) Window {
	return Day(timeexpr.Today(now, loc).AddDays(-1))
}

// Contains reports whether t falls inside w.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	return w.Date == nil || w.Date.Contains(t, loc)
}

// Filter returns the events inside w, preserving order.
func Filter(events []event.Event, w Window, loc *time.Location) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if w.Contains(ev.Timestamp, loc) {
			out = append(out, ev)
		}
	}
	return out
}

// Timeline returns up to limit events inside w, most recent first. Recency is
// log order: the last appended event comes first.
func Timeline(events []event.Event, w Window, limit int, loc *time.Location) []Hit {
	if limit <= 0 {
		limit = DefaultTimelineLimit
	}
	in := Filter(events, w, loc)
	hits := make([]Hit, 0, min(limit, len(in)))
	for i := len(in) - 1; i >= 0 && len(hits) < limit; i-- {
		hits = append(hits, NewHit(in[i], loc))
	}
	return hits
}

// ResumePoint is where the user last worked.
type ResumePoint struct {
	Project     string    `json:"project" yaml:"project"`
	Path        string    `json:"path" yaml:"path"`
	Time        time.Time `json:"time" yaml:"time"`
	LastCommand string    `json:"last_command,omitempty" yaml:"last_command,omitempty"`
}

// Resume finds the most recent event with both a project and a directory,
// and the most recent command anywhere in the log.
func Resume(events []event.Event) (ResumePoint, bool) {
	var rp ResumePoint
	found := false
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Project != "" && ev.Cwd != "" {
			rp = ResumePoint{Project: ev.Project, Path: ev.Cwd, Time: ev.Timestamp}
			found = true
			break
		}
	}
	if !found {
		return ResumePoint{}, false
	}
	for i := len(events) - 1; i >= 0; i-- {
		if c, ok := events[i].Kind.(event.Command); ok {
			rp.LastCommand = c.Cmd
			break
		}
	}
	return rp, true
}
