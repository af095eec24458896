package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/event"
)

var logFlags struct {
	cmd          string
	cwd          string
	project      string
	event        string
	prevDir      string
	sessionStart bool
	sessionEnd   bool
	idleStart    bool
	idleEnd      bool
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record one event (called by the shell hook)",
	Long: `Record one event in the timeline, stamped with the current session.

Exactly one event is written per call. The flags are checked in this order:
--session-start, --session-end, --idle-start, --idle-end, --event cd, --cmd.
With none of them, log does nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := logKind()
		if err != nil {
			return err
		}
		if kind == nil {
			return nil
		}

		if c, ok := kind.(event.Command); ok {
			ignore, err := config.NewIgnoreMatcher(cfg.IgnoreCommands)
			if err != nil {
				return err
			}
			if ignore.Match(c.Cmd) {
				return nil
			}
		}

		cwd := logFlags.cwd
		if cwd == "" {
			if wd, err := os.Getwd(); err == nil {
				cwd = wd
			}
		}

		mapper := loadMapper(cmd)
		proj := logFlags.project
		if proj == "" && cwd != "" {
			proj, _ = mapper.Resolve(cwd)
		}

		tracker, err := newTracker()
		if err != nil {
			return err
		}
		id, err := tracker.CurrentID()
		if err != nil {
			return err
		}

		log, err := openLog()
		if err != nil {
			return err
		}

		at := now()
		ev := event.New(kind, at)
		ev.Cwd, ev.Project, ev.SessionID = cwd, proj, id
		if err := log.Append(ev); err != nil {
			return err
		}

		// Entering a different project is recorded as its own event.
		if _, ok := kind.(event.DirectoryChange); ok && proj != "" {
			prev, _ := mapper.Resolve(logFlags.prevDir)
			if prev != proj {
				pd := event.New(event.ProjectDetected{Name: proj}, at)
				pd.Cwd, pd.Project, pd.SessionID = cwd, proj, id
				if err := log.Append(pd); err != nil {
					return err
				}
			}
		}

		return tracker.Touch()
	},
}

// logKind picks the event kind from the flags, or nil when none was given.
func logKind() (event.Kind, error) {
	switch {
	case logFlags.sessionStart:
		return event.SessionStart{}, nil
	case logFlags.sessionEnd:
		return event.SessionEnd{}, nil
	case logFlags.idleStart:
		return event.IdleStart{}, nil
	case logFlags.idleEnd:
		return event.IdleEnd{}, nil
	}
	switch logFlags.event {
	case "":
	case "cd", "directory_change":
		to := logFlags.cwd
		if to == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			to = wd
		}
		return event.DirectoryChange{From: logFlags.prevDir, To: to}, nil
	case "command":
		if logFlags.cmd == "" {
			return nil, fmt.Errorf("--event command requires --cmd")
		}
	default:
		return nil, fmt.Errorf("unknown event type %q: use cd or command", logFlags.event)
	}
	if logFlags.cmd != "" {
		return event.Command{Cmd: logFlags.cmd}, nil
	}
	return nil, nil
}

func init() {
	f := logCmd.Flags()
	f.StringVar(&logFlags.cmd, "cmd", "", "command line that was run")
	f.StringVar(&logFlags.cwd, "cwd", "", "working directory (default: current directory)")
	f.StringVar(&logFlags.project, "project", "", "project name (default: resolved from the project map)")
	f.StringVar(&logFlags.event, "event", "", "event type: cd or command")
	f.StringVar(&logFlags.prevDir, "prev-dir", "", "previous directory, for --event cd")
	f.BoolVar(&logFlags.sessionStart, "session-start", false, "record a session start")
	f.BoolVar(&logFlags.sessionEnd, "session-end", false, "record a session end")
	f.BoolVar(&logFlags.idleStart, "idle-start", false, "record the start of an idle period")
	f.BoolVar(&logFlags.idleEnd, "idle-end", false, "record the end of an idle period")
	logCmd.MarkFlagsMutuallyExclusive("session-start", "session-end", "idle-start", "idle-end")
	rootCmd.AddCommand(logCmd)
}
