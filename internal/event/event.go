// Package event defines the activity records stored in the trail timeline and
// the line-delimited JSON log they live in.
package event

import "time"

// Kind is the closed set of activity variants. Only the types declared in this
// package implement it; consumers switch over them exhaustively.
type Kind interface {
	// Label is the short display name of the variant.
	Label() string
	kind()
}

// Command records a shell command line as typed by the user.
type Command struct {
	Cmd string
}

// DirectoryChange records a cd from one directory to another.
type DirectoryChange struct {
	From string
	To   string
}

// SessionStart marks the beginning of a shell session.
type SessionStart struct{}

// SessionEnd marks the end of a shell session.
type SessionEnd struct{}

// IdleStart marks the point the shell hook considered the user idle.
type IdleStart struct{}

// IdleEnd marks the return from an idle period.
type IdleEnd struct{}

// Note is free text added with `trail note`.
type Note struct {
	Text string
}

// ProjectDetected records entry into a mapped project.
type ProjectDetected struct {
	Name string
}

func (Command) Label() string         { return "command" }
func (DirectoryChange) Label() string { return "cd" }
func (SessionStart) Label() string    { return "session_start" }
func (SessionEnd) Label() string      { return "session_end" }
func (IdleStart) Label() string       { return "idle_start" }
func (IdleEnd) Label() string         { return "idle_end" }
func (Note) Label() string            { return "note" }
func (ProjectDetected) Label() string { return "project" }

func (Command) kind()         {}
func (DirectoryChange) kind() {}
func (SessionStart) kind()    {}
func (SessionEnd) kind()      {}
func (IdleStart) kind()       {}
func (IdleEnd) kind()         {}
func (Note) kind()            {}
func (ProjectDetected) kind() {}

// Event is one immutable, timestamped activity record. Empty Cwd, Project and
// SessionID mean the field was not recorded.
type Event struct {
	Timestamp time.Time
	Kind      Kind
	Cwd       string
	Project   string
	SessionID string
}

// New returns an event of the given kind stamped at at, normalised to UTC.
func New(kind Kind, at time.Time) Event {
	return Event{Timestamp: at.UTC(), Kind: kind}
}

// Text returns the free text an event carries for searching. Only commands,
// notes and project detections carry text; ok is false for every other kind.
func (e Event) Text() (text string, ok bool) {
	switch k := e.Kind.(type) {
	case Command:
		return k.Cmd, true
	case Note:
		return k.Text, true
	case ProjectDetected:
		return k.Name, true
	case DirectoryChange, SessionStart, SessionEnd, IdleStart, IdleEnd:
		return "", false
	}
	return "", false
}
