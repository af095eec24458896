package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/config"
	"github.com/fakeyudi/trail/internal/setup"
	"github.com/fakeyudi/trail/internal/shell"
)

var setupShell string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure trail and install the shell hook (re-run anytime to edit settings)",
	Args:  cobra.NoArgs,
	// Bypass the normal PersistentPreRunE so setup can repair a broken config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		existing := config.Defaults()
		c, err := config.Load(path)
		var parseErr *config.ParseError
		switch {
		case err == nil:
			existing = *c
		case errors.As(err, &parseErr):
			cmd.PrintErrf("  ⚠ %v\n    Starting from defaults.\n", err)
		default:
			return err
		}

		res, err := setup.Run(cmd.InOrStdin(), cmd.OutOrStdout(), existing)
		if err != nil {
			return fmt.Errorf("setup cancelled: %w", err)
		}
		if err := config.Save(path, &res.Config); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		cmd.Println("  ✓ Settings saved to " + path)

		if res.Shell != "" && setupShell != "" {
			res.Shell = setupShell
		}
		if res.Shell != "" {
			if _, err := shell.Install(cmd.OutOrStdout(), res.Shell); err != nil {
				cmd.Printf("  ⚠ Hook install failed: %v\n", err)
				cmd.Println("    You can retry with: trail setup")
			}
		}

		cmd.Println("  Setup complete. Open a new shell to start recording.")
		cmd.Println()
		return nil
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupShell, "shell", "", "shell to install the hook for (zsh or bash)")
	rootCmd.AddCommand(setupCmd)
}
