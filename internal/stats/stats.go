// Package stats aggregates activity counts over a slice of events.
package stats

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

// Lengths of the ranked lists in a Summary.
const (
	TopProjects = 5
	TopCommands = 10
)

// Count is one ranked entry.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Counter tallies names and remembers the order in which they first
// appeared.
type Counter struct {
	order []string
	n     map[string]int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{n: make(map[string]int)}
}

// Add counts one occurrence of name.
func (c *Counter) Add(name string) {
	if _, seen := c.n[name]; !seen {
		c.order = append(c.order, name)
	}
	c.n[name]++
}

// Len is the number of distinct names.
func (c *Counter) Len() int { return len(c.order) }

// ProjectCounts counts events per non-empty project. Project "time" is
// measured in events, not wall-clock duration.
func ProjectCounts(events []event.Event) *Counter {
	c := NewCounter()
	for _, ev := range events {
		if ev.Project != "" {
			c.Add(ev.Project)
		}
	}
	return c
}

// CommandCounts counts commands by their first whitespace-separated token.
// Blank commands are skipped.
func CommandCounts(events []event.Event) *Counter {
	c := NewCounter()
	for _, ev := range events {
		cmd, ok := ev.Kind.(event.Command)
		if !ok {
			continue
		}
		fields := strings.Fields(cmd.Cmd)
		if len(fields) == 0 {
			continue
		}
		c.Add(fields[0])
	}
	return c
}

// Rank orders the counter by descending count. Equal counts keep the order
// in which the names were first seen.
func Rank(c *Counter) []Count {
	out := make([]Count, 0, c.Len())
	for _, name := range c.order {
		out = append(out, Count{Name: name, Count: c.n[name]})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// Top returns at most n entries of ranked.
func Top(ranked []Count, n int) []Count {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// Between returns the events with from <= timestamp < to. A zero bound is
// open.
func Between(events []event.Event, from, to time.Time) []event.Event {
	var out []event.Event
	for _, ev := range events {
		if !from.IsZero() && ev.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !ev.Timestamp.Before(to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Summary is the stats report.
type Summary struct {
	Events   int     `json:"events" yaml:"events"`
	Sessions int     `json:"sessions" yaml:"sessions"`
	Projects []Count `json:"projects" yaml:"projects"`
	Commands []Count `json:"commands" yaml:"commands"`
}

// Summarize builds the stats report: the top projects and commands.
func Summarize(events []event.Event) Summary {
	sessions := make(map[string]struct{})
	for _, ev := range events {
		if ev.SessionID != "" {
			sessions[ev.SessionID] = struct{}{}
		}
	}
	return Summary{
		Events:   len(events),
		Sessions: len(sessions),
		Projects: Top(Rank(ProjectCounts(events)), TopProjects),
		Commands: Top(Rank(CommandCounts(events)), TopCommands),
	}
}

// Day summarises the activity of one calendar day.
type Day struct {
	Date     string  `json:"date" yaml:"date"`
	Events   int     `json:"events" yaml:"events"`
	Commands int     `json:"commands" yaml:"commands"`
	Projects []Count `json:"projects" yaml:"projects"`
}

// Today summarises the events on the local day containing now.
func Today(events []event.Event, now time.Time, loc *time.Location) Day {
	today := timeexpr.Today(now, loc)
	var todays []event.Event
	d := Day{Date: today.String()}
	for _, ev := range events {
		if !today.Contains(ev.Timestamp, loc) {
			continue
		}
		todays = append(todays, ev)
		if _, ok := ev.Kind.(event.Command); ok {
			d.Commands++
		}
	}
	d.Events = len(todays)
	d.Projects = Rank(ProjectCounts(todays))
	return d
}

// ProjectActivity is one project's share of the log.
type ProjectActivity struct {
	Name     string    `json:"name" yaml:"name"`
	Events   int       `json:"events" yaml:"events"`
	LastPath string    `json:"last_path" yaml:"last_path"`
	LastSeen time.Time `json:"last_seen" yaml:"last_seen"`
}

// Projects ranks every project by event count, with the last directory it
// was active in and the time of its latest event.
func Projects(events []event.Event) []ProjectActivity {
	path := make(map[string]string)
	seen := make(map[string]time.Time)
	for _, ev := range events {
		if ev.Project == "" {
			continue
		}
		if ev.Cwd != "" {
			path[ev.Project] = ev.Cwd
		}
		if ev.Timestamp.After(seen[ev.Project]) {
			seen[ev.Project] = ev.Timestamp
		}
	}

	ranked := Rank(ProjectCounts(events))
	out := make([]ProjectActivity, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, ProjectActivity{
			Name:     c.Name,
			Events:   c.Count,
			LastPath: path[c.Name],
			LastSeen: seen[c.Name],
		})
	}
	return out
}
