package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/luthersystems/beatlisp/player"
)

var (
	playExpression bool
	playLog        bool
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [flags] FILE...",
	Short: "Play a program's events",
	Long: `Evaluate programs and play their events through the default audio
output.  Binaries built without the portaudio tag can only log triggers in
real time (--log).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		progs, err := readPrograms(args, playExpression)
		if err != nil {
			return err
		}
		ctx, finish := tracker.StartRun(cmd.Context(), "play", programNames(progs))
		defer func() { finish(err) }()

		tl, err := scheduleResults(ctx, progs)
		if err != nil {
			return err
		}
		sink, err := newSink()
		if err != nil {
			return err
		}
		logger.Debug("playing", "triggers", len(tl.Triggers), "length", tl.Length)
		return sink.Play(ctx, tl)
	},
}

func newSink() (player.Sink, error) {
	if playLog {
		return &player.LogSink{Logger: logger, Realtime: true}, nil
	}
	sink, err := player.NewAudioSink(player.AudioConfig{
		SampleRate: cfg.SampleRate,
		Voices:     player.NewVoices(logger),
		Logger:     logger,
	})
	if errors.Is(err, player.ErrNoAudio) {
		logger.Warn("no audio output, logging triggers instead")
		return &player.LogSink{Logger: logger, Realtime: true}, nil
	}
	return sink, err
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVarP(&playExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	playCmd.Flags().BoolVar(&playLog, "log", false,
		"Log triggers in real time instead of producing sound")
}
