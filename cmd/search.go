package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

var searchFlags struct {
	today   bool
	project string
	date    string
	format  string
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find commands, notes and projects matching a query",
	Long: `Find commands, notes and project names containing <query>, ignoring
case. At most 50 results are shown, oldest first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := query.Criteria{
			Query:     args[0],
			TodayOnly: searchFlags.today,
			Project:   searchFlags.project,
		}
		if searchFlags.date != "" {
			d, err := timeexpr.ParseDate(searchFlags.date)
			if err != nil {
				return err
			}
			c.Date = &d
		}

		events, err := loadEvents()
		if err != nil {
			return err
		}
		res := query.Search(events, c, now(), location)

		return render(cmd, searchFlags.format, res, func() {
			if res.Total == 0 {
				cmd.Printf("No results found for '%s'\n", res.Query)
				return
			}
			cmd.Printf("Found %d results:\n\n", res.Total)
			for _, h := range res.Hits {
				cmd.Println(hitLine(h))
			}
			if res.Total > len(res.Hits) {
				cmd.Println()
				cmd.Println(styles.Muted.Render(fmt.Sprintf("(showing the first %d)", len(res.Hits))))
			}
		})
	},
}

func init() {
	f := searchCmd.Flags()
	f.BoolVar(&searchFlags.today, "today", false, "only search today's activity")
	f.StringVar(&searchFlags.project, "project", "", "only search events tagged with this project")
	f.StringVar(&searchFlags.date, "date", "", "only search activity on this day (YYYY-MM-DD)")
	addFormatFlag(searchCmd, &searchFlags.format)
	rootCmd.AddCommand(searchCmd)
}
