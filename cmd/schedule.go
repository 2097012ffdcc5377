package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scheduleExpression bool

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule [flags] FILE...",
	Short: "Print the triggers a program would play",
	Long: `Evaluate programs and print the sound triggers of their events in
time order, without playing them.  Events from every top-level form play
together.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		progs, err := readPrograms(args, scheduleExpression)
		if err != nil {
			return err
		}
		ctx, finish := tracker.StartRun(cmd.Context(), "schedule", programNames(progs))
		defer func() { finish(err) }()

		tl, err := scheduleResults(ctx, progs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range tl.Triggers {
			fmt.Fprintln(out, t)
		}
		fmt.Fprintf(out, "length %v\n", tl.Length)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVarP(&scheduleExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
}
