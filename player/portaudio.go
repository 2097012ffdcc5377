//go:build portaudio

package player

import (
	"context"
	"io"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"github.com/luthersystems/beatlisp/schedule"
)

// PortAudio plays timelines through the default output device.
type PortAudio struct {
	config AudioConfig
}

// NewAudioSink returns a Sink writing to the default audio output.
func NewAudioSink(config AudioConfig) (Sink, error) {
	if config.SampleRate <= 0 {
		config.SampleRate = DefaultSampleRate
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 512
	}
	if config.Voices == nil {
		config.Voices = NewVoices(config.Logger)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PortAudio{config: config}, nil
}

// Play implements Sink.  The timeline is rendered completely before the
// stream is opened.
func (p *PortAudio) Play(ctx context.Context, tl *schedule.Timeline) error {
	pcm := Render(tl, p.config.SampleRate, p.config.Voices)

	err := portaudio.Initialize()
	if err != nil {
		return err
	}
	defer func() {
		err := portaudio.Terminate()
		if err != nil {
			p.config.Logger.Warn("portaudio termination failed", "err", err)
		}
	}()

	buf := make([]float32, p.config.BufferSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(p.config.SampleRate), len(buf), &buf)
	if err != nil {
		return err
	}
	defer stream.Close()
	err = stream.Start()
	if err != nil {
		return err
	}
	defer stream.Stop()

	p.config.Logger.Debug("playing", "samples", len(pcm), "sample_rate", p.config.SampleRate)
	for off := 0; off < len(pcm); off += len(buf) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n := copy(buf, pcm[off:])
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		err := stream.Write()
		if err != nil {
			return err
		}
	}
	return nil
}
