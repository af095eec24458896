package event_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/trail/internal/event"
)

// generateTime produces a UTC instant with nanosecond precision, which the
// RFC3339Nano wire encoding preserves.
func generateTime(t *rapid.T, label string) time.Time {
	sec := rapid.Int64Range(0, 2_000_000_000).Draw(t, label+"_unix_sec")
	nsec := rapid.Int64Range(0, 999_999_999).Draw(t, label+"_nsec")
	return time.Unix(sec, nsec).UTC()
}

// optionalString is either empty (absent) or a non-empty string.
func optionalString(t *rapid.T, label string) string {
	if rapid.Bool().Draw(t, label+"_present") {
		return rapid.StringN(1, 40, -1).Draw(t, label)
	}
	return ""
}

func generateKind(t *rapid.T) event.Kind {
	text := rapid.StringN(0, 60, -1)
	switch rapid.IntRange(0, 7).Draw(t, "kind") {
	case 0:
		return event.Command{Cmd: text.Draw(t, "cmd")}
	case 1:
		return event.DirectoryChange{From: text.Draw(t, "from"), To: text.Draw(t, "to")}
	case 2:
		return event.SessionStart{}
	case 3:
		return event.SessionEnd{}
	case 4:
		return event.IdleStart{}
	case 5:
		return event.IdleEnd{}
	case 6:
		return event.Note{Text: text.Draw(t, "text")}
	default:
		return event.ProjectDetected{Name: text.Draw(t, "name")}
	}
}

func generateEvent(t *rapid.T) event.Event {
	return event.Event{
		Timestamp: generateTime(t, "ts"),
		Kind:      generateKind(t),
		Cwd:       optionalString(t, "cwd"),
		Project:   optionalString(t, "project"),
		SessionID: optionalString(t, "session_id"),
	}
}

func sameEvent(a, b event.Event) bool {
	return a.Timestamp.Equal(b.Timestamp) &&
		a.Kind == b.Kind &&
		a.Cwd == b.Cwd &&
		a.Project == b.Project &&
		a.SessionID == b.SessionID
}

// Feature: trail, Property 1: Event line round-trip
func TestEventLineRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		original := generateEvent(t)

		line, err := event.MarshalLine(original)
		if err != nil {
			t.Fatalf("MarshalLine: %v", err)
		}
		if strings.ContainsRune(string(line), '\n') {
			t.Fatalf("encoded event spans several lines: %q", line)
		}

		got, ok := event.ParseLine(line)
		if !ok {
			t.Fatalf("ParseLine rejected its own output: %s", line)
		}
		if !sameEvent(got, original) {
			t.Errorf("round-trip mismatch:\n got  %+v\n want %+v", got, original)
		}
	})
}

func TestRoundTripEveryKind(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	kinds := []event.Kind{
		event.Command{Cmd: "git status"},
		event.DirectoryChange{From: "/src", To: "/src/app"},
		event.SessionStart{},
		event.SessionEnd{},
		event.IdleStart{},
		event.IdleEnd{},
		event.Note{Text: "fixed the flaky test"},
		event.ProjectDetected{Name: "app"},
	}
	for _, k := range kinds {
		t.Run(k.Label(), func(t *testing.T) {
			for _, ev := range []event.Event{
				{Timestamp: ts, Kind: k},
				{Timestamp: ts, Kind: k, Cwd: "/src/app", Project: "app", SessionID: "session_1714555800"},
			} {
				line, err := event.MarshalLine(ev)
				if err != nil {
					t.Fatalf("MarshalLine: %v", err)
				}
				got, ok := event.ParseLine(line)
				if !ok {
					t.Fatalf("ParseLine failed for %s", line)
				}
				if !sameEvent(got, ev) {
					t.Errorf("got %+v, want %+v", got, ev)
				}
			}
		})
	}
}

func TestKindLabels(t *testing.T) {
	want := map[string]event.Kind{
		"command":       event.Command{Cmd: "ls"},
		"cd":            event.DirectoryChange{From: "/a", To: "/b"},
		"session_start": event.SessionStart{},
		"session_end":   event.SessionEnd{},
		"idle_start":    event.IdleStart{},
		"idle_end":      event.IdleEnd{},
		"note":          event.Note{Text: "hi"},
		"project":       event.ProjectDetected{Name: "api"},
	}
	seen := map[string]bool{}
	for label, k := range want {
		if got := k.Label(); got != label {
			t.Errorf("%T.Label() = %q, want %q", k, got, label)
		}
		if seen[k.Label()] {
			t.Errorf("label %q used twice", k.Label())
		}
		seen[k.Label()] = true
	}
	if p := (event.ProjectDetected{Name: "api"}); p.Name != "api" || p.Label() != "project" {
		t.Errorf("project kind mixes up its name and label: %+v", p)
	}
}

func TestWireFormat(t *testing.T) {
	ev := event.Event{
		Timestamp: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Kind:      event.Command{Cmd: "git status"},
		Cwd:       "/src/app",
		SessionID: "session_1714555800",
	}
	line, err := event.MarshalLine(ev)
	if err != nil {
		t.Fatalf("MarshalLine: %v", err)
	}
	want := `{"timestamp":"2024-05-01T09:30:00Z","event_type":{"type":"command","cmd":"git status"},"cwd":"/src/app","project":null,"session_id":"session_1714555800"}`
	if string(line) != want {
		t.Errorf("wire format:\n got  %s\n want %s", line, want)
	}
}

func TestParseLineRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"garbage", "not json"},
		{"truncated", `{"timestamp":"2024-05-01T09:30:00Z","event_type":{"type":"comm`},
		{"unknown type", `{"timestamp":"2024-05-01T09:30:00Z","event_type":{"type":"teleport"}}`},
		{"missing payload", `{"timestamp":"2024-05-01T09:30:00Z","event_type":{"type":"command"}}`},
		{"missing timestamp", `{"event_type":{"type":"session_start"}}`},
		{"missing kind", `{"timestamp":"2024-05-01T09:30:00Z"}`},
		{"bad timestamp", `{"timestamp":"yesterday","event_type":{"type":"session_start"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if ev, ok := event.ParseLine([]byte(tc.line)); ok {
				t.Errorf("expected %q to be rejected, got %+v", tc.line, ev)
			}
		})
	}
}

func TestReadAllSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.jsonl")
	content := `{"timestamp":"2024-05-01T09:30:00Z","event_type":{"type":"command","cmd":"ls"},"cwd":"/tmp","project":null,"session_id":null}
{"timestamp": "2024-05-01T09:31:00Z", "event_type": {oops
{"timestamp":"2024-05-01T09:32:00Z","event_type":{"type":"note","text":"hi"},"cwd":null,"project":null,"session_id":"s1"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	events, err := event.NewLog(path).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}
	if _, ok := events[0].Kind.(event.Command); !ok {
		t.Errorf("first event: want Command, got %T", events[0].Kind)
	}
	if n, ok := events[1].Kind.(event.Note); !ok || n.Text != "hi" {
		t.Errorf("second event: want Note{hi}, got %#v", events[1].Kind)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	events, err := event.NewLog(filepath.Join(t.TempDir(), "nope.jsonl")).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEventsIsRestartable(t *testing.T) {
	log := event.NewLog(filepath.Join(t.TempDir(), "timeline.jsonl"))
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := log.Append(event.New(event.Command{Cmd: "make"}, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	seq := log.Events()
	for pass := 0; pass < 2; pass++ {
		n := 0
		for _, err := range seq {
			if err != nil {
				t.Fatalf("pass %d: %v", pass, err)
			}
			n++
		}
		if n != 3 {
			t.Errorf("pass %d: expected 3 events, got %d", pass, n)
		}
	}

	// Early break must not leak or fail.
	for range seq {
		break
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trail", "timeline.jsonl")
	log := event.NewLog(path)
	if log.Exists() {
		t.Fatal("log should not exist yet")
	}
	if err := log.Append(event.New(event.SessionStart{}, time.Now())); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !log.Exists() {
		t.Fatal("log should exist after Append")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", data)
	}
}

func TestAppendRejectsKindlessEvent(t *testing.T) {
	log := event.NewLog(filepath.Join(t.TempDir(), "timeline.jsonl"))
	if err := log.Append(event.Event{Timestamp: time.Now()}); err == nil {
		t.Fatal("expected an error for an event without a kind")
	}
}

func TestTextOnlyForTextualKinds(t *testing.T) {
	cases := []struct {
		kind event.Kind
		text string
		ok   bool
	}{
		{event.Command{Cmd: "go test"}, "go test", true},
		{event.Note{Text: "lunch"}, "lunch", true},
		{event.ProjectDetected{Name: "api"}, "api", true},
		{event.DirectoryChange{From: "/a", To: "/b"}, "", false},
		{event.SessionStart{}, "", false},
		{event.SessionEnd{}, "", false},
		{event.IdleStart{}, "", false},
		{event.IdleEnd{}, "", false},
	}
	for _, tc := range cases {
		text, ok := event.Event{Kind: tc.kind}.Text()
		if text != tc.text || ok != tc.ok {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.kind.Label(), text, ok, tc.text, tc.ok)
		}
	}
}

func TestFollowDeliversAppendedEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail", "timeline.jsonl")
	log := event.NewLog(path)

	// A pre-existing event must not be replayed.
	if err := log.Append(event.New(event.Note{Text: "old"}, time.Now())); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan event.Event, 16)
	done := make(chan error, 1)
	go func() {
		done <- log.Follow(ctx, func(ev event.Event) { got <- ev })
	}()

	// The watcher starts asynchronously; keep appending until one arrives.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-got:
			if n, ok := ev.Kind.(event.Note); !ok || n.Text != "new" {
				t.Fatalf("unexpected event delivered: %#v", ev.Kind)
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Follow returned error: %v", err)
			}
			return
		case <-ticker.C:
			if err := log.Append(event.New(event.Note{Text: "new"}, time.Now())); err != nil {
				t.Fatal(err)
			}
		case <-timeout:
			t.Fatal("timed out waiting for a followed event")
		}
	}
}
