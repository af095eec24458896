package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/trail/internal/shell"
)

var hookCmd = &cobra.Command{
	Use:       "hook <zsh|bash>",
	Short:     "Print the shell hook script",
	Example:   `  eval "$(trail hook zsh)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Supported,
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := shell.Script(args[0])
		if err != nil {
			return err
		}
		cmd.Print(script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
}
