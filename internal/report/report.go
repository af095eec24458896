// Package report renders query results in machine-readable and document
// formats for the --format flag.
package report

import (
	"fmt"
	"time"

	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/session"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

// Format names an output format.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON, YAML, Markdown:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: use text, json, yaml or markdown", s)
}

// Timeline is a window of the log, newest entry first.
type Timeline struct {
	Window  string      `json:"window" yaml:"window"`
	Entries []query.Hit `json:"entries" yaml:"entries"`
}

// SessionRow is one session span prepared for output.
type SessionRow struct {
	ID       string    `json:"id" yaml:"id"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	Duration string    `json:"duration" yaml:"duration"`
	Events   int       `json:"events" yaml:"events"`
}

// Sessions lists session spans in order of first appearance.
type Sessions struct {
	Sessions []SessionRow `json:"sessions" yaml:"sessions"`
}

// NewSessions converts spans into a Sessions report.
func NewSessions(spans []session.Span) Sessions {
	rows := make([]SessionRow, 0, len(spans))
	for _, s := range spans {
		rows = append(rows, SessionRow{
			ID:       s.ID,
			Start:    s.Start,
			End:      s.End,
			Duration: timeexpr.FormatDuration(s.Duration()),
			Events:   s.Events,
		})
	}
	return Sessions{Sessions: rows}
}
