package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/event"
)

var noteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Leave a note in the timeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		ev := event.New(event.Note{Text: text}, now())
		if cwd, err := os.Getwd(); err == nil {
			ev.Cwd = cwd
			ev.Project, _ = loadMapper(cmd).Resolve(cwd)
		}

		tracker, err := newTracker()
		if err != nil {
			return err
		}
		if ev.SessionID, err = tracker.CurrentID(); err != nil {
			return err
		}

		log, err := openLog()
		if err != nil {
			return err
		}
		if err := log.Append(ev); err != nil {
			return err
		}
		if err := tracker.Touch(); err != nil {
			return err
		}

		cmd.Println(styles.Success.Render("✓") + " Note added: " + text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
