package lisp

import (
	"github.com/luthersystems/beatlisp/music"
)

var musicBuiltins = []*langBuiltin{
	{"note", []string{"velocity", "instrument"}, builtinNote},
	{"chord", []string{"velocity", "instrument"}, builtinChord},
	{"sequence", nil, builtinSequence},
	{"parallel", nil, builtinParallel},
	{"beat-machine", []string{"tempo", "swing"}, builtinBeatMachine},
	{"drum-machine", []string{"tempo", "signature"}, builtinDrumMachine},
	{"arrangement", []string{"active", "bars", "volume"}, builtinArrangement},
	{"track", []string{"volume", "bars", "time", "active"}, builtinTrack},
	{"step", []string{"pitch", "volume", "duration"}, builtinStep},
	{"effect", nil, builtinEffect},
}

func arity(name string, args []*LVal, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		switch {
		case min == max:
			return Errorf(ErrArityMismatch, "%s: %d arguments expected (got %d)", name, min, len(args))
		case max < 0:
			return Errorf(ErrArityMismatch, "%s: at least %d arguments expected (got %d)", name, min, len(args))
		default:
			return Errorf(ErrArityMismatch, "%s: %d to %d arguments expected (got %d)", name, min, max, len(args))
		}
	}
	return nil
}

func pitchValue(name string, v *LVal) (music.Pitch, error) {
	switch v.Type {
	case LNumber:
		return music.NumberPitch(v.Num), nil
	case LString, LSymbol:
		if _, err := music.ParseNoteName(v.Str); err != nil {
			return music.Pitch{}, berrf(name, "%v", err)
		}
		return music.NamedPitch(v.Str), nil
	}
	return music.Pitch{}, berrf(name, "invalid pitch: %v", v)
}

type noteOptions struct {
	duration   float64
	velocity   float64
	instrument string
}

func noteArgs(name string, args []*LVal, named Named) (noteOptions, error) {
	opt := noteOptions{duration: music.DefaultDuration}
	var err error
	if len(args) > 1 {
		opt.duration, err = NumberValue(args[1])
		if err != nil {
			return opt, err
		}
	}
	opt.velocity, err = named.Number("velocity", music.DefaultVelocity)
	if err != nil {
		return opt, err
	}
	opt.instrument, err = named.String("instrument", music.DefaultInstrument)
	if err != nil {
		return opt, err
	}
	return opt, nil
}

// (note pitch [duration] :velocity 0.7 :instrument "default")
func builtinNote(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("note", args, 1, 2); err != nil {
		return nil, err
	}
	pitch, err := pitchValue("note", args[0])
	if err != nil {
		return nil, err
	}
	opt, err := noteArgs("note", args, named)
	if err != nil {
		return nil, err
	}
	return Event(music.Note{
		Pitch:      pitch,
		Duration:   opt.duration,
		Velocity:   opt.velocity,
		Instrument: opt.instrument,
	}), nil
}

// (chord notes [duration] :velocity 0.7 :instrument "default")
func builtinChord(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("chord", args, 1, 2); err != nil {
		return nil, err
	}
	notes := []*LVal{args[0]}
	if args[0].Type == LSExpr {
		notes = args[0].Cells
	}
	pitches := make([]music.Pitch, len(notes))
	for i, n := range notes {
		p, err := pitchValue("chord", n)
		if err != nil {
			return nil, err
		}
		pitches[i] = p
	}
	opt, err := noteArgs("chord", args, named)
	if err != nil {
		return nil, err
	}
	return Event(music.Chord{
		Notes:      pitches,
		Duration:   opt.duration,
		Velocity:   opt.velocity,
		Instrument: opt.instrument,
	}), nil
}

func eventArgs(name string, args []*LVal) ([]music.Event, error) {
	events := make([]music.Event, len(args))
	for i, v := range args {
		if v.Type != LEvent {
			return nil, berrf(name, "argument %d is not an event: %v", i+1, v)
		}
		events[i] = v.Event
	}
	return events, nil
}

func builtinSequence(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	events, err := eventArgs("sequence", args)
	if err != nil {
		return nil, err
	}
	return Event(music.Sequence{Events: events}), nil
}

func builtinParallel(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	events, err := eventArgs("parallel", args)
	if err != nil {
		return nil, err
	}
	return Event(music.Parallel{Events: events}), nil
}

// (beat-machine pattern sounds :tempo 120 :swing 0)
func builtinBeatMachine(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("beat-machine", args, 2, 2); err != nil {
		return nil, err
	}
	pattern, err := StringValue(args[0])
	if err != nil {
		return nil, err
	}
	for _, c := range pattern {
		switch c {
		case 'x', 'X', '.', '-':
		default:
			return nil, berrf("beat-machine", "invalid pattern character %q in %q", c, pattern)
		}
	}
	soundVals := []*LVal{args[1]}
	if args[1].Type == LSExpr {
		soundVals = args[1].Cells
	}
	sounds := make([]string, len(soundVals))
	for i, v := range soundVals {
		sounds[i], err = StringValue(v)
		if err != nil {
			return nil, err
		}
	}
	tempo, err := named.Number("tempo", music.DefaultTempo)
	if err != nil {
		return nil, err
	}
	if tempo <= 0 {
		return nil, berrf("beat-machine", "tempo must be positive: %v", tempo)
	}
	swing, err := named.Number("swing", 0)
	if err != nil {
		return nil, err
	}
	return Event(music.BeatMachine{
		Pattern: pattern,
		Sounds:  sounds,
		Tempo:   tempo,
		Swing:   swing,
	}), nil
}

// (drum-machine arrangements... :tempo 120 :signature 4)
func builtinDrumMachine(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	arrs := make([]music.Arrangement, len(args))
	for i, v := range args {
		arr, ok := v.Event.(music.Arrangement)
		if v.Type != LEvent || !ok {
			return nil, berrf("drum-machine", "argument %d is not an arrangement: %v", i+1, v)
		}
		arrs[i] = arr
	}
	tempo, err := named.Number("tempo", music.DefaultTempo)
	if err != nil {
		return nil, err
	}
	if tempo <= 0 {
		return nil, berrf("drum-machine", "tempo must be positive: %v", tempo)
	}
	signature, err := named.Int("signature", music.DefaultSignature)
	if err != nil {
		return nil, err
	}
	if signature <= 0 {
		return nil, berrf("drum-machine", "signature must be positive: %v", signature)
	}
	return Event(music.DrumMachine{
		Arrangements: arrs,
		Tempo:        tempo,
		Signature:    signature,
	}), nil
}

// (arrangement tracks... :active 1 :bars 1 :volume 0)
func builtinArrangement(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	tracks := make([]music.Track, len(args))
	for i, v := range args {
		t, ok := v.Event.(music.Track)
		if v.Type != LEvent || !ok {
			return nil, berrf("arrangement", "argument %d is not a track: %v", i+1, v)
		}
		tracks[i] = t
	}
	active, err := named.Flag("active", true)
	if err != nil {
		return nil, err
	}
	bars, err := named.Int("bars", music.DefaultBars)
	if err != nil {
		return nil, err
	}
	if bars <= 0 {
		return nil, berrf("arrangement", "bars must be positive: %d", bars)
	}
	volume, err := named.Number("volume", 0)
	if err != nil {
		return nil, err
	}
	return Event(music.NewArrangement(tracks, active, bars, volume)), nil
}

// (track sound steps :volume 0 :bars inherited :time 16 :active 1)
//
// Elements of steps may be step or effect events, unevaluated step forms
// taken from a quoted list, or the numbers 1 and 0 as shorthand for active
// and silent steps.
func builtinTrack(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("track", args, 2, 2); err != nil {
		return nil, err
	}
	sound, err := StringValue(args[0])
	if err != nil {
		return nil, err
	}
	if args[1].Type != LSExpr {
		return nil, Errorf(ErrInvalidTrackSteps, "track %q: steps must be a list (got %v)", sound, args[1].Type)
	}
	steps := make([]music.Event, len(args[1].Cells))
	for i, v := range args[1].Cells {
		steps[i], err = rt.trackStep(env, sound, v)
		if err != nil {
			return nil, err
		}
	}
	t := music.Track{
		Sound:  sound,
		Steps:  steps,
		Active: true,
		Time:   music.DefaultTime,
	}
	t.Volume, err = named.Number("volume", 0)
	if err != nil {
		return nil, err
	}
	t.Time, err = named.Int("time", music.DefaultTime)
	if err != nil {
		return nil, err
	}
	if t.Time <= 0 {
		return nil, berrf("track", "time must be positive: %d", t.Time)
	}
	t.Active, err = named.Flag("active", true)
	if err != nil {
		return nil, err
	}
	if named.Has("bars") {
		t.Bars, err = named.Int("bars", 0)
		if err != nil {
			return nil, err
		}
		if t.Bars <= 0 {
			return nil, berrf("track", "bars must be positive: %d", t.Bars)
		}
		t.ExplicitBars = true
	}
	return Event(t), nil
}

func (rt *Runtime) trackStep(env *LEnv, sound string, v *LVal) (music.Event, error) {
	switch v.Type {
	case LSExpr, LSymbol, LQuote:
		ev, err := rt.Eval(v, env)
		if err != nil {
			return nil, err
		}
		v = ev
	case LNumber:
		return music.Step{Active: v.Num == 1, Duration: music.DefaultStepDuration}, nil
	}
	if v.Type == LEvent {
		switch v.Event.(type) {
		case music.Step, music.Effect:
			return v.Event, nil
		}
	}
	return nil, Errorf(ErrInvalidTrackSteps, "track %q: element is not a step: %v", sound, v)
}

// (step active :pitch 0 :volume 0 :duration 0.25)
func builtinStep(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("step", args, 1, 1); err != nil {
		return nil, err
	}
	active, err := FlagValue(args[0])
	if err != nil {
		return nil, err
	}
	s := music.Step{Active: active}
	s.Pitch, err = named.Number("pitch", 0)
	if err != nil {
		return nil, err
	}
	s.Volume, err = named.Number("volume", 0)
	if err != nil {
		return nil, err
	}
	s.Duration, err = named.Number("duration", music.DefaultStepDuration)
	if err != nil {
		return nil, err
	}
	if s.Duration < 0 {
		return nil, berrf("step", "duration must not be negative: %v", s.Duration)
	}
	return Event(s), nil
}

// (effect type params... target)
func builtinEffect(rt *Runtime, env *LEnv, args []*LVal, named Named) (*LVal, error) {
	if err := arity("effect", args, 2, -1); err != nil {
		return nil, err
	}
	typ, err := StringValue(args[0])
	if err != nil {
		return nil, err
	}
	last := args[len(args)-1]
	if last.Type != LEvent {
		return nil, berrf("effect", "target is not a step: %v", last)
	}
	switch last.Event.(type) {
	case music.Step, music.Effect:
	default:
		return nil, berrf("effect", "target is not a step: %v", last)
	}
	var params []interface{}
	for _, v := range args[1 : len(args)-1] {
		switch v.Type {
		case LNumber:
			params = append(params, v.Num)
		case LString, LSymbol:
			params = append(params, v.Str)
		default:
			return nil, berrf("effect", "invalid parameter: %v", v)
		}
	}
	return Event(music.Effect{
		Type:   typ,
		Params: params,
		Target: last.Event,
	}), nil
}
