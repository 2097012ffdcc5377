package player

import (
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/luthersystems/beatlisp/music"
	"github.com/luthersystems/beatlisp/schedule"
)

// SMFOptions configure Standard MIDI File export.
type SMFOptions struct {
	Ticks     uint16  // ticks per quarter note
	Tempo     float64 // tempo written to the file, in beats per minute
	Signature uint8   // beats per measure
}

// DefaultSMFOptions returns the options used for zero fields of SMFOptions.
func DefaultSMFOptions() SMFOptions {
	return SMFOptions{
		Ticks:     960,
		Tempo:     music.DefaultTempo,
		Signature: music.DefaultSignature,
	}
}

type midiEvent struct {
	tick uint32
	off  bool
	ch   uint8
	key  uint8
	vel  uint8
}

// WriteSMF writes tl to w as a single track Standard MIDI File.  Triggers of
// known drum sounds play on the percussion channel.  Other unpitched sounds
// are transposed from middle C.
func WriteSMF(w io.Writer, tl *schedule.Timeline, opts SMFOptions) error {
	def := DefaultSMFOptions()
	if opts.Ticks == 0 {
		opts.Ticks = def.Ticks
	}
	if opts.Tempo <= 0 {
		opts.Tempo = def.Tempo
	}
	if opts.Signature == 0 {
		opts.Signature = def.Signature
	}
	ticksPerSecond := float64(opts.Ticks) * opts.Tempo / 60

	var events []midiEvent
	for _, t := range tl.Triggers {
		ch, key := midiKey(t)
		vel := uint8(math.Round(clampUnit(t.Velocity*t.Gain) * 127))
		if vel == 0 {
			continue
		}
		on := uint32(math.Round(t.At.Seconds() * ticksPerSecond))
		off := uint32(math.Round((t.At + t.Duration).Seconds() * ticksPerSecond))
		if off <= on {
			off = on + 1
		}
		events = append(events,
			midiEvent{tick: on, ch: ch, key: key, vel: vel},
			midiEvent{tick: off, off: true, ch: ch, key: key})
	}
	// note offs sort before note ons at the same tick so retriggered keys
	// are not cut short.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaMeter(opts.Signature, 4))
	tr.Add(0, smf.MetaTempo(opts.Tempo))
	var last uint32
	for _, e := range events {
		delta := e.tick - last
		last = e.tick
		if e.off {
			tr.Add(delta, midi.NoteOff(e.ch, e.key))
		} else {
			tr.Add(delta, midi.NoteOn(e.ch, e.key, e.vel))
		}
	}
	end := uint32(math.Round(tl.Length.Seconds() * ticksPerSecond))
	var closeDelta uint32
	if end > last {
		closeDelta = end - last
	}
	tr.Close(closeDelta)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.Ticks)
	err := s.Add(tr)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

func midiKey(t schedule.Trigger) (channel uint8, key uint8) {
	if t.Pitched {
		return 0, clampKey(float64(t.Note))
	}
	if k, ok := DrumKey(t.Sound); ok {
		return DrumChannel, k
	}
	return 0, clampKey(schedule.MiddleC + t.Pitch)
}

func clampKey(x float64) uint8 {
	return uint8(math.Max(0, math.Min(127, math.Round(x))))
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
