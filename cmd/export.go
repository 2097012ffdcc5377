package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luthersystems/beatlisp/player"
)

var (
	exportExpression bool
	exportOutput     string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [flags] FILE...",
	Short: "Write a program's events to a MIDI file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		progs, err := readPrograms(args, exportExpression)
		if err != nil {
			return err
		}
		ctx, finish := tracker.StartRun(cmd.Context(), "export", programNames(progs))
		defer func() { finish(err) }()

		tl, err := scheduleResults(ctx, progs)
		if err != nil {
			return err
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		opts := player.DefaultSMFOptions()
		opts.Ticks = uint16(cfg.MIDITicks)
		opts.Tempo = cfg.Tempo
		err = player.WriteSMF(f, tl, opts)
		if err != nil {
			f.Close()
			return err
		}
		err = f.Close()
		if err != nil {
			return err
		}
		logger.Info("midi file written",
			"path", exportOutput,
			"triggers", len(tl.Triggers),
			"length", tl.Length)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVarP(&exportExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "out.mid",
		"Path of the MIDI file to write")
}
