package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/project"
	"github.com/fakeyudi/trail/internal/report"
	"github.com/fakeyudi/trail/internal/session"
	"github.com/fakeyudi/trail/internal/ui"
)

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg *config.Config

// styles are the output styles for the configured theme.
var styles ui.Styles

// now and location are the clock and zone every command reads. Tests pin
// both.
var (
	now      = time.Now
	location = time.Local
)

var rootCmd = &cobra.Command{
	Use:   "trail",
	Short: "A time machine for your terminal: where you were, what you ran",
	Long: `trail records the commands you run, the directories you visit and the
notes you leave, and answers questions about them later.

Install the shell hook with 'trail setup' or 'eval "$(trail hook zsh)"'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		styles = ui.NewStyles(ui.ThemeFor(cfg.Theme), ui.ColorEnabled(os.Stdout))
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	// Print helpers write to stderr unless an output is set.
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return c, nil
}

func openLog() (*event.Log, error) {
	path, err := config.TimelinePath()
	if err != nil {
		return nil, err
	}
	return event.NewLog(path), nil
}

// loadEvents reads the whole log. A log that does not exist yet is empty.
func loadEvents() ([]event.Event, error) {
	log, err := openLog()
	if err != nil {
		return nil, err
	}
	return log.ReadAll()
}

func newTracker() (*session.Tracker, error) {
	path, err := config.StatePath()
	if err != nil {
		return nil, err
	}
	store, err := session.NewStore(path)
	if err != nil {
		return nil, err
	}
	return session.NewTracker(store, now), nil
}

// loadMapper loads the project map unless project integration is off. A map
// that cannot be read is reported on stderr and treated as empty so logging
// from the shell hook never fails on it.
func loadMapper(cmd *cobra.Command) *project.Mapper {
	if !cfg.EnableProjectIntegration {
		return nil
	}
	path := cfg.ProjectMapPath
	if path == "" {
		p, err := project.DefaultPath()
		if err != nil {
			return nil
		}
		path = p
	}
	m, err := project.Load(path)
	if err != nil {
		cmd.PrintErrln("warning:", err)
		return nil
	}
	return m
}

// addFormatFlag registers --format on cmd, bound to target.
func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "format", string(report.Text), "output format: text, json, yaml or markdown")
}

// render writes v in the requested format. For text output it calls text
// instead.
func render(cmd *cobra.Command, format string, v any, text func()) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	r := report.For(f)
	if r == nil {
		text()
		return nil
	}
	data, err := r.Render(v)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}
