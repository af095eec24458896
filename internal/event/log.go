package event

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
)

// Log is the append-only timeline file: one JSON event per line.
type Log struct {
	Path string
}

// NewLog returns a Log backed by the file at path.
func NewLog(path string) *Log {
	return &Log{Path: path}
}

// Exists reports whether the timeline file has been created yet.
func (l *Log) Exists() bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

// Events returns a lazy sequence over the events in the log. Each iteration
// re-opens the file, so the sequence can be ranged over more than once.
// Malformed lines are skipped. A missing file yields nothing; any other I/O
// failure is yielded once as an error and ends the sequence.
func (l *Log) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		f, err := os.Open(l.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			yield(Event{}, fmt.Errorf("failed to open timeline: %w", err))
			return
		}
		defer f.Close()

		r := bufio.NewReader(f)
		for {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				if ev, ok := ParseLine(line); ok {
					if !yield(ev, nil) {
						return
					}
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(Event{}, fmt.Errorf("failed to read timeline: %w", err))
				}
				return
			}
		}
	}
}

// ReadAll loads every parseable event in log order.
func (l *Log) ReadAll() ([]Event, error) {
	var events []Event
	for ev, err := range l.Events() {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Append serializes ev and appends it to the log as a single write, creating
// the file and its directory when needed.
func (l *Log) Append(ev Event) error {
	line, err := MarshalLine(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open timeline: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("failed to append event: %w", err)
	}
	return f.Close()
}
