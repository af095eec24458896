package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/project"
	"github.com/fakeyudi/trail/internal/query"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show where you last worked",
	Long: `Show the project and directory you last worked in and the last command
you ran. With auto_cd_on_resume enabled only the path is printed, so
cd "$(trail resume)" works.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := loadEvents()
		if err != nil {
			return err
		}
		rp, ok := query.Resume(events)
		if !ok {
			cmd.Println("No previous session found.")
			return nil
		}

		if cfg.AutoCdOnResume {
			cmd.Println(rp.Path)
			return nil
		}

		cmd.Println(styles.Title.Render("Last Active Session:"))
		cmd.Println()
		cmd.Println("  Project: " + styles.Project.Render(rp.Project))
		cmd.Println("  Path: " + styles.Path.Render(rp.Path))
		if branch, ok := project.Branch(rp.Path, nil); ok {
			cmd.Println("  Branch: " + styles.Success.Render(branch))
		}
		cmd.Println("  Time: " + styles.Time.Render(query.LocalTime(rp.Time, location)))
		if rp.LastCommand != "" {
			cmd.Println("  Last command: " + styles.Success.Render(rp.LastCommand))
		}
		cmd.Println()
		cmd.Println("To resume: " + styles.Path.Render("cd "+rp.Path))
		cmd.Println()
		cmd.Println(styles.Muted.Render("Tip: set auto_cd_on_resume in your trail config to print just the path."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
