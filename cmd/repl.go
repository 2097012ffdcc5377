package cmd

import (
	"github.com/spf13/cobra"

	"github.com/luthersystems/beatlisp/repl"
)

var replPrompt string

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.RunRepl(replPrompt, newRuntime(), parserOptions()...)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", "beatlisp> ",
		"Prompt shown before each expression")
}
