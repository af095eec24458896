package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/stats"
)

var todayFormat string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Summarise today's activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := loadEvents()
		if err != nil {
			return err
		}
		d := stats.Today(events, now(), location)

		return render(cmd, todayFormat, d, func() {
			if d.Events == 0 {
				cmd.Println("No activity recorded today.")
				return
			}
			cmd.Println(styles.Title.Render("Today's Summary"))
			cmd.Println()
			cmd.Println("  Events: " + styles.Warning.Render(fmt.Sprint(d.Events)))
			cmd.Println("  Commands: " + styles.Success.Render(fmt.Sprint(d.Commands)))
			cmd.Println("  Projects: " + styles.Project.Render(fmt.Sprint(len(d.Projects))))
			if len(d.Projects) > 0 {
				cmd.Println()
				cmd.Println(styles.Label.Render("  Active Projects:"))
				for _, p := range d.Projects {
					cmd.Printf("    • %s (%d activities)\n", styles.Project.Render(p.Name), p.Count)
				}
			}
		})
	},
}

func init() {
	addFormatFlag(todayCmd, &todayFormat)
	rootCmd.AddCommand(todayCmd)
}
