package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Wire tags for the "type" field of event_type.
const (
	typeCommand         = "command"
	typeDirectoryChange = "directory_change"
	typeSessionStart    = "session_start"
	typeSessionEnd      = "session_end"
	typeIdleStart       = "idle_start"
	typeIdleEnd         = "idle_end"
	typeNote            = "note"
	typeProjectDetected = "project_detected"
)

// wireEvent is the on-disk shape of one timeline line. Absent optional fields
// are written as null.
type wireEvent struct {
	Timestamp *time.Time `json:"timestamp"`
	EventType *wireKind  `json:"event_type"`
	Cwd       *string    `json:"cwd"`
	Project   *string    `json:"project"`
	SessionID *string    `json:"session_id"`
}

type wireKind struct {
	Type string  `json:"type"`
	Cmd  *string `json:"cmd,omitempty"`
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
	Text *string `json:"text,omitempty"`
	Name *string `json:"name,omitempty"`
}

var errMissingField = errors.New("missing field")

// MarshalJSON encodes e in the timeline wire format.
func (e Event) MarshalJSON() ([]byte, error) {
	k, err := encodeKind(e.Kind)
	if err != nil {
		return nil, err
	}
	ts := e.Timestamp.UTC()
	return json.Marshal(wireEvent{
		Timestamp: &ts,
		EventType: k,
		Cwd:       optional(e.Cwd),
		Project:   optional(e.Project),
		SessionID: optional(e.SessionID),
	})
}

// UnmarshalJSON decodes the timeline wire format. Unknown kinds and missing
// payload fields are errors.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Timestamp == nil {
		return fmt.Errorf("timestamp: %w", errMissingField)
	}
	if w.EventType == nil {
		return fmt.Errorf("event_type: %w", errMissingField)
	}
	k, err := decodeKind(w.EventType)
	if err != nil {
		return err
	}
	*e = Event{
		Timestamp: w.Timestamp.UTC(),
		Kind:      k,
		Cwd:       deref(w.Cwd),
		Project:   deref(w.Project),
		SessionID: deref(w.SessionID),
	}
	return nil
}

// ParseLine decodes a single timeline line. Blank or malformed lines yield
// ok == false rather than an error.
func ParseLine(line []byte) (ev Event, ok bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Event{}, false
	}
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, false
	}
	return ev, true
}

// MarshalLine encodes ev as exactly one line of JSON without the trailing
// newline.
func MarshalLine(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func encodeKind(k Kind) (*wireKind, error) {
	switch k := k.(type) {
	case Command:
		return &wireKind{Type: typeCommand, Cmd: &k.Cmd}, nil
	case DirectoryChange:
		return &wireKind{Type: typeDirectoryChange, From: &k.From, To: &k.To}, nil
	case SessionStart:
		return &wireKind{Type: typeSessionStart}, nil
	case SessionEnd:
		return &wireKind{Type: typeSessionEnd}, nil
	case IdleStart:
		return &wireKind{Type: typeIdleStart}, nil
	case IdleEnd:
		return &wireKind{Type: typeIdleEnd}, nil
	case Note:
		return &wireKind{Type: typeNote, Text: &k.Text}, nil
	case ProjectDetected:
		return &wireKind{Type: typeProjectDetected, Name: &k.Name}, nil
	case nil:
		return nil, errors.New("event has no kind")
	}
	return nil, fmt.Errorf("unsupported event kind %T", k)
}

func decodeKind(w *wireKind) (Kind, error) {
	switch w.Type {
	case typeCommand:
		if w.Cmd == nil {
			return nil, fmt.Errorf("command.cmd: %w", errMissingField)
		}
		return Command{Cmd: *w.Cmd}, nil
	case typeDirectoryChange:
		if w.From == nil || w.To == nil {
			return nil, fmt.Errorf("directory_change.from/to: %w", errMissingField)
		}
		return DirectoryChange{From: *w.From, To: *w.To}, nil
	case typeSessionStart:
		return SessionStart{}, nil
	case typeSessionEnd:
		return SessionEnd{}, nil
	case typeIdleStart:
		return IdleStart{}, nil
	case typeIdleEnd:
		return IdleEnd{}, nil
	case typeNote:
		if w.Text == nil {
			return nil, fmt.Errorf("note.text: %w", errMissingField)
		}
		return Note{Text: *w.Text}, nil
	case typeProjectDetected:
		if w.Name == nil {
			return nil, fmt.Errorf("project_detected.name: %w", errMissingField)
		}
		return ProjectDetected{Name: *w.Name}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", w.Type)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
