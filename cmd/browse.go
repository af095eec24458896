package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/tui"
	"github.com/fakeyudi/trail/internal/ui"
)

var browseFollow bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse your activity in an interactive viewer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := openLog()
		if err != nil {
			return err
		}
		events, err := log.ReadAll()
		if err != nil {
			return err
		}
		opts := tui.Options{
			Now:   now,
			Loc:   location,
			Theme: ui.ThemeFor(cfg.Theme),
		}
		if browseFollow {
			opts.Follow = log
		}
		return tui.Run(cmd.Context(), events, opts)
	},
}

func init() {
	browseCmd.Flags().BoolVarP(&browseFollow, "follow", "f", true, "stream new activity into the viewer")
	rootCmd.AddCommand(browseCmd)
}
