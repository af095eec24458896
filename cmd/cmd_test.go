package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/event"
)

var testNow = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

// setupEnv points every trail path at a temp dir and pins the clock and zone.
func setupEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("NO_COLOR", "1")
	t.Setenv("SHELL", "/bin/zsh")

	origLoc := location
	location = time.UTC
	t.Cleanup(func() { location = origLoc })
	setClock(t, testNow)
	return home
}

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func writeConfig(t *testing.T, edit func(*config.Config)) {
	t.Helper()
	c := config.Defaults()
	edit(&c)
	path, err := config.Path()
	if err != nil {
		t.Fatal(err)
	}
	if err := config.Save(path, &c); err != nil {
		t.Fatal(err)
	}
}

func writeProjectMap(t *testing.T, home, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(home, ".projwarp.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and captures stdout and
// stderr separately.
func executeCommand(args ...string) (stdout, stderr string, err error) {
	return executeWithInput("", args...)
}

func executeWithInput(input string, args ...string) (stdout, stderr string, err error) {
	resetFlags(rootCmd)
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	_, err = rootCmd.ExecuteC()
	return out.String(), errOut.String(), err
}

// mustRun fails the test when the command returns an error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := executeCommand(args...)
	if err != nil {
		t.Fatalf("trail %s: %v\nstderr: %s", strings.Join(args, " "), err, errOut)
	}
	return out
}

// logAt records one command at the given time.
func logAt(t *testing.T, at time.Time, args ...string) {
	t.Helper()
	setClock(t, at)
	mustRun(t, append([]string{"log"}, args...)...)
	setClock(t, testNow)
}

func readEvents(t *testing.T) []event.Event {
	t.Helper()
	events, err := loadEvents()
	if err != nil {
		t.Fatalf("loadEvents: %v", err)
	}
	return events
}
