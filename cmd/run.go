package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luthersystems/beatlisp/lisp/lispjson"
)

var (
	runExpression bool
	runPrint      bool
	runJSON       bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code provided supplied via the command line or a file.
All programs are evaluated in one global environment, in order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		progs, err := readPrograms(args, runExpression)
		if err != nil {
			return err
		}
		ctx, finish := tracker.StartRun(cmd.Context(), "run", programNames(progs))
		defer func() { finish(err) }()

		results, err := evalPrograms(ctx, newRuntime(), progs)
		if err != nil {
			return err
		}
		if !runPrint && !runJSON {
			return nil
		}
		out := cmd.OutOrStdout()
		for _, v := range results {
			if runJSON {
				b, err := (&lispjson.Serializer{Indent: "  "}).Dump(v)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				continue
			}
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVar(&runJSON, "json", false,
		"Print expression values to stdout as JSON")
}
