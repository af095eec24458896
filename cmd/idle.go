package cmd

import (
	"github.com/spf13/cobra"
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Print idle or active for the current session",
	Long: `Print "idle" when the current session has had no activity for longer
than idle_timeout_minutes, otherwise "active". The shell hook calls this
before logging each command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, err := newTracker()
		if err != nil {
			return err
		}
		idle, err := tracker.Idle(cfg.IdleTimeout())
		if err != nil {
			return err
		}
		if idle {
			cmd.Println("idle")
		} else {
			cmd.Println("active")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idleCmd)
}
