// Package player renders scheduled triggers with sampled or synthesized
// voices and hands them to an output sink.
package player

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/luthersystems/beatlisp/schedule"
)

// Voice renders one trigger as mono PCM samples in [-1, 1].
type Voice interface {
	Render(t schedule.Trigger, sampleRate int) []float32
}

// Sample is a recorded sound.  Playing it at a rate other than 1 resamples
// it, shifting pitch and length together.
type Sample struct {
	SampleRate int
	Data       []float32
}

// Render implements Voice.
func (s *Sample) Render(t schedule.Trigger, sampleRate int) []float32 {
	if len(s.Data) == 0 || sampleRate <= 0 {
		return nil
	}
	rate := t.Rate
	if rate <= 0 {
		rate = 1
	}
	step := rate * float64(s.SampleRate) / float64(sampleRate)
	n := int(float64(len(s.Data)) / step)
	out := make([]float32, n)
	amp := t.Gain * t.Velocity
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		frac := pos - float64(j)
		x := float64(s.Data[j])
		if j+1 < len(s.Data) {
			x += frac * (float64(s.Data[j+1]) - x)
		}
		out[i] = float32(x * amp)
	}
	return out
}

// Voices maps sound names to samples.  Sounds without a registered sample
// are played by a synthesized approximation.  Voices is safe for concurrent
// use.
type Voices struct {
	mut     sync.RWMutex
	samples map[string]*Sample
	synth   Voice
	logger  *slog.Logger
}

// NewVoices returns an empty registry.  If logger is nil fallbacks are not
// logged.
func NewVoices(logger *slog.Logger) *Voices {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Voices{
		samples: make(map[string]*Sample),
		synth:   Synth{},
		logger:  logger,
	}
}

// Register associates a sample with a sound name, replacing any previous
// sample.
func (v *Voices) Register(name string, s *Sample) {
	v.mut.Lock()
	defer v.mut.Unlock()
	v.samples[name] = s
}

// Voice returns the voice for a sound name.
func (v *Voices) Voice(name string) Voice {
	v.mut.RLock()
	s, ok := v.samples[name]
	v.mut.RUnlock()
	if ok {
		return s
	}
	v.logger.Debug("no sample registered; using synthesized voice", "sound", name)
	return v.synth
}

// Synth synthesizes rough approximations of common drum sounds and a decaying
// sine tone for everything else.
type Synth struct{}

// Render implements Voice.
func (Synth) Render(t schedule.Trigger, sampleRate int) []float32 {
	if sampleRate <= 0 {
		return nil
	}
	sr := float64(sampleRate)
	amp := t.Gain * t.Velocity
	switch drumFamily(t.Sound) {
	case "kick":
		// pitch sweep from 150Hz down to 50Hz
		return synthesize(0.4*sr, func(i int, x float64) float64 {
			freq := 50 + 100*math.Exp(-x*20)
			return math.Sin(2*math.Pi*freq*x*t.Rate) * math.Exp(-x*8)
		}, sr, amp)
	case "snare", "clap":
		rng := rand.New(rand.NewSource(int64(t.At)))
		return synthesize(0.25*sr, func(i int, x float64) float64 {
			tone := math.Sin(2 * math.Pi * 180 * t.Rate * x)
			return (0.6*(rng.Float64()*2-1) + 0.4*tone) * math.Exp(-x*18)
		}, sr, amp)
	case "hat", "cymbal":
		rng := rand.New(rand.NewSource(int64(t.At)))
		decay := 60.0
		if strings.Contains(t.Sound, "open") || drumFamily(t.Sound) == "cymbal" {
			decay = 12
		}
		return synthesize(0.3*sr, func(i int, x float64) float64 {
			return (rng.Float64()*2 - 1) * math.Exp(-x*decay)
		}, sr, amp)
	}
	freq := 440 * math.Pow(2, float64(t.Note-69)/12)
	if !t.Pitched {
		freq = 261.63 * t.Rate
	}
	length := t.Duration.Seconds()
	if length <= 0 {
		length = 0.25
	}
	return synthesize(length*sr, func(i int, x float64) float64 {
		return math.Sin(2*math.Pi*freq*x) * math.Exp(-x*3)
	}, sr, amp)
}

func synthesize(n float64, f func(i int, x float64) float64, sr float64, amp float64) []float32 {
	out := make([]float32, int(n))
	for i := range out {
		out[i] = float32(amp * f(i, float64(i)/sr))
	}
	return out
}
