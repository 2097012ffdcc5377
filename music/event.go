// Package music defines the event descriptors produced by evaluating a
// program.  Descriptors are plain data: they hold no reference to the
// environment that produced them and are never modified once constructed, so
// a scheduler may consume them at its own pace.
package music

import (
	"bytes"
	"fmt"
	"strconv"
)

// Kind discriminates event descriptors.
type Kind uint

// Possible Kind values
const (
	KindInvalid Kind = iota
	KindNote
	KindChord
	KindSequence
	KindParallel
	KindBeatMachine
	KindDrumMachine
	KindArrangement
	KindTrack
	KindStep
	KindEffect
	numKinds
)

var kindStrings = [numKinds]string{
	KindInvalid:     "invalid",
	KindNote:        "note",
	KindChord:       "chord",
	KindSequence:    "sequence",
	KindParallel:    "parallel",
	KindBeatMachine: "beatMachine",
	KindDrumMachine: "drumMachine",
	KindArrangement: "arrangement",
	KindTrack:       "track",
	KindStep:        "step",
	KindEffect:      "effect",
}

func (k Kind) String() string {
	if k >= numKinds {
		return kindStrings[KindInvalid]
	}
	return kindStrings[k]
}

// Event is a music event descriptor.
type Event interface {
	Kind() Kind
	// String renders the event as source text that would construct it.
	String() string
}

// Default values used by the music primitives.
const (
	DefaultDuration     = 1
	DefaultVelocity     = 0.7
	DefaultInstrument   = "default"
	DefaultTempo        = 120
	DefaultSignature    = 4
	DefaultBars         = 1
	DefaultTime         = 16
	DefaultStepDuration = 0.25
)

// Note is a single pitched note.  Duration is measured in beats.
type Note struct {
	Pitch      Pitch
	Duration   float64
	Velocity   float64
	Instrument string
}

func (Note) Kind() Kind { return KindNote }

func (n Note) String() string {
	return fmt.Sprintf("(note %s %s :velocity %s :instrument %q)",
		n.Pitch, formatNum(n.Duration), formatNum(n.Velocity), n.Instrument)
}

// Chord is a set of pitches sounding together.
type Chord struct {
	Notes      []Pitch
	Duration   float64
	Velocity   float64
	Instrument string
}

func (Chord) Kind() Kind { return KindChord }

func (c Chord) String() string {
	var buf bytes.Buffer
	buf.WriteString("(chord '(")
	for i, p := range c.Notes {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(p.String())
	}
	fmt.Fprintf(&buf, ") %s :velocity %s :instrument %q)",
		formatNum(c.Duration), formatNum(c.Velocity), c.Instrument)
	return buf.String()
}

// Sequence plays its events back-to-back.
type Sequence struct {
	Events []Event
}

func (Sequence) Kind() Kind { return KindSequence }

func (s Sequence) String() string {
	return eventsString("(sequence", s.Events)
}

// Parallel plays its events simultaneously.
type Parallel struct {
	Events []Event
}

func (Parallel) Kind() Kind { return KindParallel }

func (p Parallel) String() string {
	return eventsString("(parallel", p.Events)
}

// BeatMachine is a one-line step pattern of hits ('x' or 'X') and rests ('.'
// or '-') played as sixteenth notes.  Every hit triggers all Sounds.
type BeatMachine struct {
	Pattern string
	Sounds  []string
	Tempo   float64
	Swing   float64
}

func (BeatMachine) Kind() Kind { return KindBeatMachine }

func (b BeatMachine) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(beat-machine %q '(", b.Pattern)
	for i, s := range b.Sounds {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(strconv.Quote(s))
	}
	fmt.Fprintf(&buf, ") :tempo %s :swing %s)", formatNum(b.Tempo), formatNum(b.Swing))
	return buf.String()
}

// DrumMachine plays its arrangements one after another.  Signature is the
// number of beats in a measure.
type DrumMachine struct {
	Arrangements []Arrangement
	Tempo        float64
	Signature    int
}

func (DrumMachine) Kind() Kind { return KindDrumMachine }

func (d DrumMachine) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(drum-machine :tempo %s :signature %d", formatNum(d.Tempo), d.Signature)
	for _, a := range d.Arrangements {
		buf.WriteString(" ")
		buf.WriteString(a.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// Arrangement is a section of a drum machine lasting Bars measures.  Its
// tracks play simultaneously.
type Arrangement struct {
	Tracks []Track
	Active bool
	Bars   int
	Volume float64
}

// NewArrangement returns an arrangement whose tracks without an explicit
// number of bars inherit bars.
func NewArrangement(tracks []Track, active bool, bars int, volume float64) Arrangement {
	resolved := make([]Track, len(tracks))
	for i, t := range tracks {
		if !t.ExplicitBars {
			t.Bars = bars
		}
		resolved[i] = t
	}
	return Arrangement{
		Tracks: resolved,
		Active: active,
		Bars:   bars,
		Volume: volume,
	}
}

func (Arrangement) Kind() Kind { return KindArrangement }

func (a Arrangement) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(arrangement :active %d :bars %d :volume %s",
		flag(a.Active), a.Bars, formatNum(a.Volume))
	for _, t := range a.Tracks {
		buf.WriteString(" ")
		buf.WriteString(t.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// Track is the timeline of one sound within an arrangement.  Steps holds Step
// and Effect events.  Time is the number of steps in a measure and Bars the
// length of the track's loop in measures.
type Track struct {
	Sound        string
	Steps        []Event
	Active       bool
	Bars         int
	ExplicitBars bool
	Time         int
	Volume       float64
}

func (Track) Kind() Kind { return KindTrack }

func (t Track) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(track %q '(", t.Sound)
	for i, s := range t.Steps {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(s.String())
	}
	buf.WriteString(")")
	if !t.Active {
		buf.WriteString(" :active 0")
	}
	if t.Bars > 0 {
		fmt.Fprintf(&buf, " :bars %d", t.Bars)
	}
	fmt.Fprintf(&buf, " :time %d :volume %s)", t.Time, formatNum(t.Volume))
	return buf.String()
}

// Step is one rhythmic slot of a track.  Pitch is a semitone offset applied
// to the track's sound, Volume is in decibels and Duration in beats.
type Step struct {
	Active   bool
	Pitch    float64
	Volume   float64
	Duration float64
}

func (Step) Kind() Kind { return KindStep }

func (s Step) String() string {
	return fmt.Sprintf("(step %d :pitch %s :volume %s :duration %s)",
		flag(s.Active), formatNum(s.Pitch), formatNum(s.Volume), formatNum(s.Duration))
}

// Effect applies an audio effect to its target, a Step or another Effect.
// Params holds float64 and string values.
type Effect struct {
	Type   string
	Params []interface{}
	Target Event
}

func (Effect) Kind() Kind { return KindEffect }

func (e Effect) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "(effect %q", e.Type)
	for _, p := range e.Params {
		buf.WriteString(" ")
		switch p := p.(type) {
		case string:
			buf.WriteString(strconv.Quote(p))
		case float64:
			buf.WriteString(formatNum(p))
		default:
			fmt.Fprint(&buf, p)
		}
	}
	if e.Target != nil {
		buf.WriteString(" ")
		buf.WriteString(e.Target.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// UnwrapStep returns the step targeted by ev along with the effects applied to
// it, outermost first.  UnwrapStep returns false if ev is neither a Step nor
// an Effect chain ending in a Step.
func UnwrapStep(ev Event) (Step, []Effect, bool) {
	var effects []Effect
	for {
		switch e := ev.(type) {
		case Step:
			return e, effects, true
		case Effect:
			effects = append(effects, e)
			ev = e.Target
		default:
			return Step{}, nil, false
		}
	}
}

// EffectiveVolume returns the volume of a step played by track t in
// arrangement a.  Volumes of the three levels stack additively.
func EffectiveVolume(a Arrangement, t Track, s Step) float64 {
	return s.Volume + t.Volume + a.Volume
}

func eventsString(head string, events []Event) string {
	var buf bytes.Buffer
	buf.WriteString(head)
	for _, ev := range events {
		buf.WriteString(" ")
		buf.WriteString(ev.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
