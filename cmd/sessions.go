package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/report"
	"github.com/fakeyudi/trail/internal/session"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

var sessionsFormat string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := loadEvents()
		if err != nil {
			return err
		}
		spans := session.Group(events)

		return render(cmd, sessionsFormat, report.NewSessions(spans), func() {
			if len(spans) == 0 {
				cmd.Println("No sessions recorded yet.")
				return
			}
			cmd.Println(styles.Title.Render("Sessions:"))
			for _, s := range spans {
				start := s.Start.In(location)
				cmd.Printf("  %s - %s (%d events, %s)  %s\n",
					start.Format("2006-01-02 15:04"),
					s.End.In(location).Format("15:04"),
					s.Events,
					timeexpr.FormatDuration(s.Duration()),
					styles.Muted.Render(s.ID),
				)
			}
		})
	},
}

func init() {
	addFormatFlag(sessionsCmd, &sessionsFormat)
	rootCmd.AddCommand(sessionsCmd)
}
