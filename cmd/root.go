package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/luthersystems/beatlisp/config"
	"github.com/luthersystems/beatlisp/metrics"
)

// Version is reported to Sentry as the release.
var Version = "dev"

var (
	envFiles []string
	debug    bool

	// logger is the package-wide structured logger.  Safe to use before
	// initLogger is called.
	logger = slog.Default()

	cfg     = config.Default()
	tracker = &metrics.SentryMetrics{}
	flush   = func() {}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "beatlisp",
	Short: "A lisp for describing music",
	Long: `Beatlisp evaluates programs written in a small lisp whose values
describe notes, chords, beat machines and drum machines.  Programs can be
printed, scheduled, exported as MIDI files or played.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFiles...)
		if err != nil {
			return err
		}
		initLogger(debug || cfg.Debug)
		tracker, flush, err = metrics.Init(cfg.SentryDSN, Version)
		if err != nil {
			logger.Warn("metrics disabled", "err", err)
			tracker, flush = &metrics.SentryMetrics{}, func() {}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorDetail(err))
		os.Exit(1)
	}
}

// initLogger configures the shared slog logger and makes it the default.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"Read configuration from the given .env files (default .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
}
