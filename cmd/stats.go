package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/stats"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

var statsFlags struct {
	from   string
	to     string
	week   bool
	month  bool
	format string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the most active projects and most used commands",
	Long: `Show the five most active projects and the ten most used commands.

--from and --to take a date (YYYY-MM-DD) or a time expression such as 3d.
A --to date includes the whole day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := statsRange()
		if err != nil {
			return err
		}
		events, err := loadEvents()
		if err != nil {
			return err
		}
		s := stats.Summarize(stats.Between(events, from, to))

		return render(cmd, statsFlags.format, s, func() {
			cmd.Println(styles.Title.Render("Activity Statistics"))
			cmd.Println()
			cmd.Println(styles.Label.Render("Most Active Projects:"))
			if len(s.Projects) == 0 {
				cmd.Println(styles.Muted.Render("  (none)"))
			}
			for i, p := range s.Projects {
				cmd.Printf("  %d. %s (%d activities)\n", i+1, styles.Project.Render(p.Name), p.Count)
			}
			cmd.Println()
			cmd.Println(styles.Label.Render("Most Used Commands:"))
			if len(s.Commands) == 0 {
				cmd.Println(styles.Muted.Render("  (none)"))
			}
			for i, c := range s.Commands {
				cmd.Printf("  %d. %s (%d)\n", i+1, styles.Success.Render(c.Name), c.Count)
			}
		})
	},
}

// statsRange turns the range flags into [from, to). Zero bounds are open.
func statsRange() (from, to time.Time, err error) {
	t := now()
	switch {
	case statsFlags.week:
		from, err = timeexpr.Resolve("1w", t, location)
	case statsFlags.month:
		from, err = timeexpr.Resolve("30d", t, location)
	case statsFlags.from != "":
		from, err = parseBound(statsFlags.from, false)
	}
	if err != nil {
		return
	}
	if statsFlags.to != "" {
		to, err = parseBound(statsFlags.to, true)
	}
	if err == nil && !from.IsZero() && !to.IsZero() && !from.Before(to) {
		err = fmt.Errorf("--from must be before --to")
	}
	return
}

// parseBound accepts a calendar date or a time expression. A date used as
// the end of a range covers that whole day.
func parseBound(s string, end bool) (time.Time, error) {
	if d, err := timeexpr.ParseDate(s); err == nil {
		if end {
			d = d.AddDays(1)
		}
		return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, location).UTC(), nil
	}
	return timeexpr.Resolve(s, now(), location)
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsFlags.from, "from", "", "start of the range (date or time expression)")
	f.StringVar(&statsFlags.to, "to", "", "end of the range (date or time expression)")
	f.BoolVar(&statsFlags.week, "week", false, "only the last 7 days")
	f.BoolVar(&statsFlags.month, "month", false, "only the last 30 days")
	statsCmd.MarkFlagsMutuallyExclusive("week", "month", "from")
	addFormatFlag(statsCmd, &statsFlags.format)
	rootCmd.AddCommand(statsCmd)
}
