package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/event"
	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/report"
	"github.com/fakeyudi/trail/internal/timeexpr"
)

var timelineFlags struct {
	today     bool
	yesterday bool
	date      string
	limit     int
	follow    bool
	format    string
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show recent activity, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if timelineFlags.follow && timelineFlags.format != string(report.Text) {
			return fmt.Errorf("--follow only supports text output, not %q", timelineFlags.format)
		}
		w, label, err := timelineWindow()
		if err != nil {
			return err
		}
		log, err := openLog()
		if err != nil {
			return err
		}
		events, err := log.ReadAll()
		if err != nil {
			return err
		}
		hits := query.Timeline(events, w, timelineFlags.limit, location)
		tl := report.Timeline{Window: label, Entries: hits}

		err = render(cmd, timelineFlags.format, tl, func() {
			if !log.Exists() {
				cmd.Println("No activity recorded yet. Run 'trail setup' to install the shell hook.")
				return
			}
			if len(hits) == 0 {
				cmd.Println("No activity found for the specified period.")
				return
			}
			cmd.Println(styles.Title.Render("Activity Timeline"))
			cmd.Println()
			for _, h := range hits {
				cmd.Println(timelineLine(h))
			}
		})
		if err != nil || !timelineFlags.follow {
			return err
		}
		return followTimeline(cmd, log, w)
	},
}

func timelineWindow() (query.Window, string, error) {
	switch {
	case timelineFlags.today:
		return query.TodayWindow(now(), location), "today", nil
	case timelineFlags.yesterday:
		return query.YesterdayWindow(now(), location), "yesterday", nil
	case timelineFlags.date != "":
		d, err := timeexpr.ParseDate(timelineFlags.date)
		if err != nil {
			return query.Window{}, "", err
		}
		return query.Day(d), d.String(), nil
	}
	return query.Window{}, "all", nil
}

// followTimeline prints events as they are appended until interrupted.
func followTimeline(cmd *cobra.Command, log *event.Log, w query.Window) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return follow(ctx, cmd, log, w)
}

func follow(ctx context.Context, cmd *cobra.Command, log *event.Log, w query.Window) error {
	cmd.Println(styles.Muted.Render("Following new activity, Ctrl-C to stop."))
	return log.Follow(ctx, func(ev event.Event) {
		if w.Contains(ev.Timestamp, location) {
			cmd.Println(timelineLine(query.NewHit(ev, location)))
		}
	})
}

func init() {
	f := timelineCmd.Flags()
	f.BoolVar(&timelineFlags.today, "today", false, "only today's activity")
	f.BoolVar(&timelineFlags.yesterday, "yesterday", false, "only yesterday's activity")
	f.StringVar(&timelineFlags.date, "date", "", "only activity on this day (YYYY-MM-DD)")
	f.IntVarP(&timelineFlags.limit, "limit", "n", query.DefaultTimelineLimit, "maximum number of entries")
	f.BoolVarP(&timelineFlags.follow, "follow", "f", false, "keep printing new activity as it is recorded")
	timelineCmd.MarkFlagsMutuallyExclusive("today", "yesterday", "date")
	addFormatFlag(timelineCmd, &timelineFlags.format)
	rootCmd.AddCommand(timelineCmd)
}
