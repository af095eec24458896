package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

var backCmd = &cobra.Command{
	Use:   "back <when>",
	Short: "Print the directory you were in at a past time",
	Long: `Print the working directory you were in at a past time, for use as
cd "$(trail back 30m)".

<when> is one of now, today, yesterday, last-session or a relative offset
such as 30m, 2h, 3d or 1w. A location more than 24 hours older than <when>
is refused.`,
	Example: `  trail back 30m
  cd "$(trail back yesterday)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := timeexpr.Resolve(args[0], now(), location)
		if err != nil {
			return err
		}
		events, err := loadEvents()
		if err != nil {
			return err
		}

		m, err := query.Locate(events, target)
		if errors.Is(err, query.ErrNoHistory) {
			cmd.PrintErrln("No activity found for that time.")
			return nil
		}
		if err != nil {
			return err
		}
		cmd.Println(m.Event.Cwd)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backCmd)
}
