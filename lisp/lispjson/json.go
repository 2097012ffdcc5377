// Package lispjson serializes evaluation results, including event
// descriptors, as JSON.
package lispjson

import (
	"encoding/json"
	"fmt"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/music"
)

// DefaultSerializer is the Serializer used by exported function Dump.
var DefaultSerializer = &Serializer{}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v *lisp.LVal) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Serializer defines JSON serialization rules for lisp values.
type Serializer struct {
	// Indent, when non-empty, produces indented output.
	Indent string
}

// Dump serializes v.
func (s *Serializer) Dump(v *lisp.LVal) ([]byte, error) {
	x, err := s.dumpInterface(v)
	if err != nil {
		return nil, err
	}
	if s.Indent != "" {
		return json.MarshalIndent(x, "", s.Indent)
	}
	return json.Marshal(x)
}

func (s *Serializer) dumpInterface(v *lisp.LVal) (interface{}, error) {
	switch v.Type {
	case lisp.LNumber:
		return v.Num, nil
	case lisp.LString, lisp.LSymbol:
		return v.Str, nil
	case lisp.LBool:
		return v.Bool, nil
	case lisp.LSExpr:
		lis := make([]interface{}, len(v.Cells))
		for i, c := range v.Cells {
			x, err := s.dumpInterface(c)
			if err != nil {
				return nil, err
			}
			lis[i] = x
		}
		return lis, nil
	case lisp.LQuote:
		return s.dumpInterface(v.Cells[0])
	case lisp.LEvent:
		return EncodeEvent(v.Event), nil
	default:
		return nil, fmt.Errorf("unable to serialize %s value: %v", v.Type, v)
	}
}

// EncodeEvent returns a JSON-compatible representation of ev.  Every event
// object has a "type" key naming its kind.
func EncodeEvent(ev music.Event) map[string]interface{} {
	if ev == nil {
		return nil
	}
	m := map[string]interface{}{"type": ev.Kind().String()}
	switch ev := ev.(type) {
	case music.Note:
		m["pitch"] = encodePitch(ev.Pitch)
		m["duration"] = ev.Duration
		m["velocity"] = ev.Velocity
		m["instrument"] = ev.Instrument
	case music.Chord:
		notes := make([]interface{}, len(ev.Notes))
		for i, p := range ev.Notes {
			notes[i] = encodePitch(p)
		}
		m["notes"] = notes
		m["duration"] = ev.Duration
		m["velocity"] = ev.Velocity
		m["instrument"] = ev.Instrument
	case music.Sequence:
		m["events"] = encodeEvents(ev.Events)
	case music.Parallel:
		m["events"] = encodeEvents(ev.Events)
	case music.BeatMachine:
		m["pattern"] = ev.Pattern
		m["sounds"] = ev.Sounds
		m["tempo"] = ev.Tempo
		m["swing"] = ev.Swing
	case music.DrumMachine:
		arrs := make([]interface{}, len(ev.Arrangements))
		for i, a := range ev.Arrangements {
			arrs[i] = EncodeEvent(a)
		}
		m["arrangements"] = arrs
		m["tempo"] = ev.Tempo
		m["signature"] = ev.Signature
	case music.Arrangement:
		tracks := make([]interface{}, len(ev.Tracks))
		for i, t := range ev.Tracks {
			tracks[i] = EncodeEvent(t)
		}
		m["tracks"] = tracks
		m["active"] = ev.Active
		m["bars"] = ev.Bars
		m["volume"] = ev.Volume
	case music.Track:
		m["soundName"] = ev.Sound
		m["steps"] = encodeEvents(ev.Steps)
		m["active"] = ev.Active
		m["bars"] = ev.Bars
		m["time"] = ev.Time
		m["volume"] = ev.Volume
	case music.Step:
		m["active"] = ev.Active
		m["pitch"] = ev.Pitch
		m["volume"] = ev.Volume
		m["duration"] = ev.Duration
	case music.Effect:
		m["effectType"] = ev.Type
		m["params"] = ev.Params
		m["target"] = EncodeEvent(ev.Target)
	}
	return m
}

func encodeEvents(events []music.Event) []interface{} {
	out := make([]interface{}, len(events))
	for i, ev := range events {
		out[i] = EncodeEvent(ev)
	}
	return out
}

func encodePitch(p music.Pitch) interface{} {
	if p.IsName() {
		return p.Name
	}
	return p.Num
}
