package query

import (
	"strings"
	"time"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

// SearchLimit caps how many hits Search renders.
const SearchLimit = 50

// TimeLayout is how event times are shown to the user.
const TimeLayout = "2006-01-02 15:04:05"

// Criteria are the predicates of a search. Zero values disable a predicate.
type Criteria struct {
	Query     string
	TodayOnly bool
	Project   string
	Date      *timeexpr.Date
}

// Hit is a matching event annotated for display.
type Hit struct {
	Event       event.Event `json:"-" yaml:"-"`
	Time        string      `json:"time" yaml:"time"`
	Kind        string      `json:"kind" yaml:"kind"`
	Project     string      `json:"project,omitempty" yaml:"project,omitempty"`
	Description string      `json:"description" yaml:"description"`
}

// SearchResult holds the total match count and the first SearchLimit hits in
// log order.
type SearchResult struct {
	Query string `json:"query" yaml:"query"`
	Total int    `json:"total" yaml:"total"`
	Hits  []Hit  `json:"hits" yaml:"hits"`
}

// Search returns the events whose text contains c.Query, ignoring case, and
// that pass every other predicate in c. Dates are evaluated in loc.
func Search(events []event.Event, c Criteria, now time.Time, loc *time.Location) SearchResult {
	needle := strings.ToLower(c.Query)
	today := timeexpr.Today(now, loc)

	res := SearchResult{Query: c.Query, Hits: []Hit{}}
	for _, ev := range events {
		if c.TodayOnly && !today.Contains(ev.Timestamp, loc) {
			continue
		}
		if c.Date != nil && !c.Date.Contains(ev.Timestamp, loc) {
			continue
		}
		if c.Project != "" && ev.Project != c.Project {
			continue
		}
		text, ok := ev.Text()
		if !ok || !strings.Contains(strings.ToLower(text), needle) {
			continue
		}
		res.Total++
		if len(res.Hits) < SearchLimit {
			res.Hits = append(res.Hits, NewHit(ev, loc))
		}
	}
	return res
}

// NewHit annotates ev for display.
func NewHit(ev event.Event, loc *time.Location) Hit {
	return Hit{
		Event:       ev,
		Time:        LocalTime(ev.Timestamp, loc),
		Kind:        ev.Kind.Label(),
		Project:     ev.Project,
		Description: Describe(ev.Kind),
	}
}

// LocalTime formats t with TimeLayout in loc.
func LocalTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

// Describe returns the human description of a kind.
func Describe(k event.Kind) string {
	switch k := k.(type) {
	case event.Command:
		return "ran " + k.Cmd
	case event.DirectoryChange:
		return "cd " + k.To
	case event.SessionStart:
		return "session started"
	case event.SessionEnd:
		return "session ended"
	case event.IdleStart:
		return "idle"
	case event.IdleEnd:
		return "active"
	case event.Note:
		return "note: " + k.Text
	case event.ProjectDetected:
		return "entered project " + k.Name
	}
	return ""
}
