package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

func TestLogThenBack(t *testing.T) {
	setupEnv(t)
	logAt(t, testNow.Add(-2*time.Hour), "--cmd", "make build", "--cwd", "/src/api")
	logAt(t, testNow.Add(-10*time.Minute), "--event", "cd", "--cwd", "/src/web", "--prev-dir", "/src/api")

	events := readEvents(t)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if c, ok := events[0].Kind.(event.Command); !ok || c.Cmd != "make build" {
		t.Errorf("first event = %#v", events[0].Kind)
	}
	if d, ok := events[1].Kind.(event.DirectoryChange); !ok || d.From != "/src/api" || d.To != "/src/web" {
		t.Errorf("second event = %#v", events[1].Kind)
	}
	if events[0].SessionID == "" || events[0].SessionID != events[1].SessionID {
		t.Errorf("session ids %q and %q should match", events[0].SessionID, events[1].SessionID)
	}

	if out := mustRun(t, "back", "30m"); out != "/src/api\n" {
		t.Errorf("back 30m = %q", out)
	}
	if out := mustRun(t, "back", "now"); out != "/src/web\n" {
		t.Errorf("back now = %q", out)
	}
}

func TestBackNoHistory(t *testing.T) {
	setupEnv(t)
	out, errOut, err := executeCommand("back", "1h")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "No activity found for that time.") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestBackStale(t *testing.T) {
	setupEnv(t)
	logAt(t, testNow.Add(-48*time.Hour), "--cmd", "ls", "--cwd", "/old")

	out, _, err := executeCommand("back", "now")
	var stale *query.StaleError
	if !errors.As(err, &stale) {
		t.Fatalf("want StaleError, got %v", err)
	}
	if !strings.Contains(err.Error(), "2d 0h ago") {
		t.Errorf("error = %q", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
}

func TestBackBadExpression(t *testing.T) {
	setupEnv(t)
	_, _, err := executeCommand("back", "bogus")
	if !errors.Is(err, timeexpr.ErrUnrecognizedTimeExpression) {
		t.Errorf("want unrecognized expression, got %v", err)
	}
	_, _, err = executeCommand("back", "xh")
	if !errors.Is(err, timeexpr.ErrInvalidTimeFormat) {
		t.Errorf("want invalid format, got %v", err)
	}
}

func TestLogDetectsProjectChange(t *testing.T) {
	home := setupEnv(t)
	writeProjectMap(t, home, `{"projects": {"api": "/src/api"}}`)

	logAt(t, testNow.Add(-time.Hour), "--event", "cd", "--cwd", "/src/api/cmd", "--prev-dir", "/tmp")
	logAt(t, testNow.Add(-50*time.Minute), "--event", "cd", "--cwd", "/src/api", "--prev-dir", "/src/api/cmd")

	events := readEvents(t)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	p, ok := events[1].Kind.(event.ProjectDetected)
	if !ok || p.Name != "api" {
		t.Errorf("second event = %#v, want project api", events[1].Kind)
	}
	for _, ev := range events {
		if ev.Project != "api" {
			t.Errorf("%s event has project %q", ev.Kind.Label(), ev.Project)
		}
	}
}

func TestLogProjectIntegrationOff(t *testing.T) {
	home := setupEnv(t)
	writeProjectMap(t, home, `{"projects": {"api": "/src/api"}}`)
	writeConfig(t, func(c *config.Config) { c.EnableProjectIntegration = false })

	logAt(t, testNow, "--cmd", "go test", "--cwd", "/src/api")
	events := readEvents(t)
	if len(events) != 1 || events[0].Project != "" {
		t.Errorf("events = %+v", events)
	}
}

func TestLogIgnoredCommands(t *testing.T) {
	setupEnv(t)
	writeConfig(t, func(c *config.Config) { c.IgnoreCommands = []string{"ls*", "clear"} })

	logAt(t, testNow, "--cmd", "ls -la", "--cwd", "/src")
	logAt(t, testNow, "--cmd", "clear", "--cwd", "/src")
	logAt(t, testNow, "--cmd", "git status", "--cwd", "/src")

	events := readEvents(t)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if c := events[0].Kind.(event.Command); c.Cmd != "git status" {
		t.Errorf("logged %q", c.Cmd)
	}
}

func TestLogSessionFlags(t *testing.T) {
	setupEnv(t)
	for _, flag := range []string{"--session-start", "--idle-start", "--idle-end", "--session-end"} {
		logAt(t, testNow, flag, "--cwd", "/src")
	}
	var names []string
	for _, ev := range readEvents(t) {
		names = append(names, ev.Kind.Label())
	}
	if got := strings.Join(names, ","); got != "session_start,idle_start,idle_end,session_end" {
		t.Errorf("kinds = %s", got)
	}

	_, _, err := executeCommand("log", "--session-start", "--session-end")
	if err == nil {
		t.Error("expected mutually exclusive flags to fail")
	}
}

func TestLogNothingToRecord(t *testing.T) {
	setupEnv(t)
	mustRun(t, "log", "--cwd", "/src")
	log, err := openLog()
	if err != nil {
		t.Fatal(err)
	}
	if log.Exists() {
		t.Error("log without an event should not create the timeline")
	}

	if _, _, err := executeCommand("log", "--event", "teleport"); err == nil {
		t.Error("expected unknown event type to fail")
	}
	if _, _, err := executeCommand("log", "--event", "command"); err == nil {
		t.Error("expected --event command without --cmd to fail")
	}
}

func TestIdleCommand(t *testing.T) {
	setupEnv(t)
	if out := mustRun(t, "idle"); out != "active\n" {
		t.Errorf("without a session: %q", out)
	}

	logAt(t, testNow.Add(-30*time.Minute), "--cmd", "vim", "--cwd", "/src")
	if out := mustRun(t, "idle"); out != "idle\n" {
		t.Errorf("after 30m: %q", out)
	}

	logAt(t, testNow.Add(-5*time.Minute), "--idle-end", "--cwd", "/src")
	if out := mustRun(t, "idle"); out != "active\n" {
		t.Errorf("after 5m: %q", out)
	}
}

func TestNoteCommand(t *testing.T) {
	setupEnv(t)
	out := mustRun(t, "note", "fix", "the", "flaky", "test")
	if !strings.Contains(out, "Note added: fix the flaky test") {
		t.Errorf("output = %q", out)
	}
	events := readEvents(t)
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	n, ok := events[0].Kind.(event.Note)
	if !ok || n.Text != "fix the flaky test" {
		t.Errorf("event = %#v", events[0].Kind)
	}
	if events[0].Cwd == "" || events[0].SessionID == "" {
		t.Errorf("note missing context: %+v", events[0])
	}

	if _, _, err := executeCommand("note"); err == nil {
		t.Error("expected note without text to fail")
	}
}
