// Package schedule converts event descriptor trees into time-stamped
// triggers for a player.
package schedule

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/luthersystems/beatlisp/music"
)

// ErrUnschedulable is returned for events that cannot be played on their own.
var ErrUnschedulable = errors.New("event cannot be scheduled")

// MiddleC is the MIDI note that plays a sound at its recorded pitch.
const MiddleC = 60

// Trigger is a single sound played by the player.
type Trigger struct {
	At       time.Duration
	Duration time.Duration
	// Sound names the voice: a drum track's sound or a note's instrument.
	Sound string
	// Pitched is true for notes.  Note is their MIDI note number.
	Pitched bool
	Note    int
	// Pitch is the offset in semitones from the sound's recorded pitch and
	// Rate the corresponding playback rate.
	Pitch    float64
	Rate     float64
	Velocity float64
	// Volume is the stacked volume in decibels and Gain its linear factor.
	Volume  float64
	Gain    float64
	Effects []music.Effect
}

func (t Trigger) String() string {
	s := fmt.Sprintf("%9.4fs +%.4fs %-12s", t.At.Seconds(), t.Duration.Seconds(), t.Sound)
	if t.Pitched {
		s += fmt.Sprintf(" note=%d", t.Note)
	} else if t.Pitch != 0 {
		s += fmt.Sprintf(" pitch=%+g", t.Pitch)
	}
	s += fmt.Sprintf(" vel=%g vol=%+gdB", t.Velocity, t.Volume)
	for _, e := range t.Effects {
		s += " fx=" + e.Type
	}
	return s
}

// Timeline is the result of scheduling an event.
type Timeline struct {
	Triggers []Trigger // ordered by At
	Length   time.Duration
}

// Option configures scheduling.
type Option func(*scheduler)

// WithTempo sets the tempo in beats per minute used for notes, chords and
// arrangements scheduled outside of a drum machine.  Beat and drum machines
// use their own tempo.
func WithTempo(bpm float64) Option {
	return func(s *scheduler) {
		s.tempo = bpm
	}
}

// WithLogger makes scheduling log skipped events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *scheduler) {
		s.logger = logger
	}
}

type scheduler struct {
	tempo    float64
	logger   *slog.Logger
	triggers []Trigger
}

// Schedule walks ev and returns its triggers.  Sequences play their events
// back-to-back and parallels play them together.
func Schedule(ev music.Event, opts ...Option) (*Timeline, error) {
	s := &scheduler{
		tempo:  music.DefaultTempo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tempo <= 0 {
		return nil, fmt.Errorf("invalid tempo: %v", s.tempo)
	}
	end, err := s.schedule(ev, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(s.triggers, func(i, j int) bool {
		return s.triggers[i].At < s.triggers[j].At
	})
	return &Timeline{Triggers: s.triggers, Length: end}, nil
}

// schedule appends the triggers of ev starting at time at and returns the
// time ev ends.
func (s *scheduler) schedule(ev music.Event, at time.Duration) (time.Duration, error) {
	switch ev := ev.(type) {
	case music.Note:
		return s.note(ev.Pitch, ev.Duration, ev.Velocity, ev.Instrument, at)
	case music.Chord:
		end := at
		for _, p := range ev.Notes {
			t, err := s.note(p, ev.Duration, ev.Velocity, ev.Instrument, at)
			if err != nil {
				return 0, err
			}
			end = maxDuration(end, t)
		}
		return end, nil
	case music.Sequence:
		t := at
		for _, e := range ev.Events {
			var err error
			t, err = s.schedule(e, t)
			if err != nil {
				return 0, err
			}
		}
		return t, nil
	case music.Parallel:
		end := at
		for _, e := range ev.Events {
			t, err := s.schedule(e, at)
			if err != nil {
				return 0, err
			}
			end = maxDuration(end, t)
		}
		return end, nil
	case music.BeatMachine:
		return s.beatMachine(ev, at), nil
	case music.DrumMachine:
		return s.drumMachine(ev, at)
	case music.Arrangement:
		return s.drumMachine(music.DrumMachine{
			Arrangements: []music.Arrangement{ev},
			Tempo:        s.tempo,
			Signature:    music.DefaultSignature,
		}, at)
	case nil:
		return 0, fmt.Errorf("%w: nil event", ErrUnschedulable)
	default:
		return 0, fmt.Errorf("%w: %s outside of an arrangement", ErrUnschedulable, ev.Kind())
	}
}

func (s *scheduler) note(p music.Pitch, beats, velocity float64, instrument string, at time.Duration) (time.Duration, error) {
	n, err := p.MIDI()
	if err != nil {
		return 0, err
	}
	dur := BeatsDuration(beats, s.tempo)
	pitch := n - MiddleC
	s.triggers = append(s.triggers, Trigger{
		At:       at,
		Duration: dur,
		Sound:    instrument,
		Pitched:  true,
		Note:     int(math.Round(n)),
		Pitch:    pitch,
		Rate:     Rate(pitch),
		Velocity: velocity,
		Gain:     1,
	})
	return at + dur, nil
}

// beatMachine plays the pattern as sixteenth notes.  Swing delays every
// odd-numbered step by swing times half a step.
func (s *scheduler) beatMachine(b music.BeatMachine, at time.Duration) time.Duration {
	step := BeatsDuration(0.25, b.Tempo)
	swing := time.Duration(clamp(b.Swing, 0, 1) * float64(step) / 2)
	n := 0
	for _, c := range b.Pattern {
		t := at + time.Duration(n)*step
		if n%2 == 1 {
			t += swing
		}
		n++
		if c != 'x' && c != 'X' {
			continue
		}
		velocity := music.DefaultVelocity
		if c == 'X' {
			velocity = 1
		}
		for _, sound := range b.Sounds {
			s.triggers = append(s.triggers, Trigger{
				At:       t,
				Duration: step,
				Sound:    sound,
				Rate:     1,
				Velocity: velocity,
				Gain:     1,
			})
		}
	}
	return at + time.Duration(n)*step
}

// drumMachine plays active arrangements one after another.  Each lasts its
// bars in measures.  Within an arrangement every track loops over its own
// bars, placing its steps on a grid of time steps per measure.
func (s *scheduler) drumMachine(d music.DrumMachine, at time.Duration) (time.Duration, error) {
	measure := BeatsDuration(float64(d.Signature), d.Tempo)
	if measure <= 0 {
		return 0, fmt.Errorf("invalid drum machine measure: tempo %v signature %d", d.Tempo, d.Signature)
	}
	t := at
	for i, arr := range d.Arrangements {
		if !arr.Active {
			s.logger.Debug("skipping inactive arrangement", "index", i)
			continue
		}
		end := t + time.Duration(arr.Bars)*measure
		for _, track := range arr.Tracks {
			err := s.track(d, arr, track, measure, t, end)
			if err != nil {
				return 0, err
			}
		}
		t = end
	}
	return t, nil
}

func (s *scheduler) track(d music.DrumMachine, arr music.Arrangement, track music.Track, measure, start, end time.Duration) error {
	if !track.Active {
		s.logger.Debug("skipping inactive track", "sound", track.Sound)
		return nil
	}
	bars := track.Bars
	if bars <= 0 {
		bars = arr.Bars
	}
	if track.Time <= 0 {
		return fmt.Errorf("track %q: invalid time: %d", track.Sound, track.Time)
	}
	loop := time.Duration(bars) * measure
	stepLen := measure / time.Duration(track.Time)
	if len(track.Steps) > bars*track.Time {
		s.logger.Warn("track has more steps than fit in its bars",
			"sound", track.Sound, "steps", len(track.Steps), "bars", bars, "time", track.Time)
	}
	for loopStart := start; loopStart < end; loopStart += loop {
		for i, ev := range track.Steps {
			if i >= bars*track.Time {
				break
			}
			at := loopStart + time.Duration(i)*stepLen
			if at >= end {
				break
			}
			step, effects, ok := music.UnwrapStep(ev)
			if !ok {
				return fmt.Errorf("track %q: step %d is a %s", track.Sound, i, ev.Kind())
			}
			if !step.Active {
				continue
			}
			vol := music.EffectiveVolume(arr, track, step)
			s.triggers = append(s.triggers, Trigger{
				At:       at,
				Duration: BeatsDuration(step.Duration, d.Tempo),
				Sound:    track.Sound,
				Pitch:    step.Pitch,
				Rate:     Rate(step.Pitch),
				Velocity: music.DefaultVelocity,
				Volume:   vol,
				Gain:     Gain(vol),
				Effects:  effects,
			})
		}
	}
	return nil
}

// BeatsDuration returns the duration of the given number of beats at tempo
// bpm.
func BeatsDuration(beats, bpm float64) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Duration(beats * 60 / bpm * float64(time.Second))
}

// Rate returns the playback rate that transposes a sound by semitones.
func Rate(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// Gain returns the linear gain of a volume in decibels.
func Gain(db float64) float64 {
	return math.Pow(10, db/20)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
