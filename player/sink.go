package player

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/luthersystems/beatlisp/schedule"
)

// ErrNoAudio is returned by NewAudioSink when the binary was built without
// an audio backend.
var ErrNoAudio = errors.New("audio output is not available in this build (build with -tags portaudio)")

// Sink plays a timeline.  Play blocks until the timeline has finished or
// ctx is done.
type Sink interface {
	Play(ctx context.Context, tl *schedule.Timeline) error
}

// AudioConfig configures an audio sink.
type AudioConfig struct {
	SampleRate int
	BufferSize int
	Voices     *Voices
	Logger     *slog.Logger
}

// LogSink logs each trigger instead of producing sound.  When Realtime is
// true each trigger is logged at its scheduled time.
type LogSink struct {
	Logger   *slog.Logger
	Realtime bool
}

// Play implements Sink.
func (s *LogSink) Play(ctx context.Context, tl *schedule.Timeline) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	for _, t := range tl.Triggers {
		if s.Realtime {
			err := sleepUntil(ctx, start.Add(t.At))
			if err != nil {
				return err
			}
		}
		logger.Info("trigger",
			"at", t.At,
			"sound", t.Sound,
			"note", t.Note,
			"pitch", t.Pitch,
			"volume", t.Volume,
			"velocity", t.Velocity)
	}
	if s.Realtime {
		return sleepUntil(ctx, start.Add(tl.Length))
	}
	return nil
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
