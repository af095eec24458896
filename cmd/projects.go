package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/query"
	"github.com/fakeyudi/trail/internal/stats"
)

var projectsFormat string

var projectsCmd = &cobra.Command{
	Use:   "projects [alias]",
	Short: "Show activity per project",
	Long: `Show how many events each project has and where you last were in it.
Before any project activity is recorded, the aliases from the project map
are listed instead.

With an alias, print only the directory it maps to, for cd "$(trail projects api)".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			path, ok := loadMapper(cmd).Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown project %q", args[0])
			}
			cmd.Println(path)
			return nil
		}

		events, err := loadEvents()
		if err != nil {
			return err
		}
		projects := stats.Projects(events)

		return render(cmd, projectsFormat, projects, func() {
			cmd.Println(styles.Title.Render("Project Activity"))
			cmd.Println()
			if len(projects) == 0 {
				cmd.Println("No projects tracked yet.")
				if m := loadMapper(cmd); m != nil && len(m.Aliases) > 0 {
					cmd.Println()
					cmd.Println(styles.Muted.Render("Available projects from the project map:"))
					for _, a := range m.Aliases {
						cmd.Printf("  • %s → %s\n", styles.Project.Render(a.Name), styles.Muted.Render(a.Path))
					}
				}
				return
			}
			for _, p := range projects {
				cmd.Printf("  %s  %d activities\n", styles.Project.Render(p.Name), p.Events)
				if p.LastPath != "" {
					cmd.Printf("    %s  %s\n", styles.Path.Render(p.LastPath), styles.Time.Render(query.LocalTime(p.LastSeen, location)))
				}
			}
		})
	},
}

func init() {
	addFormatFlag(projectsCmd, &projectsFormat)
	rootCmd.AddCommand(projectsCmd)
}
