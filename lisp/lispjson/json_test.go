package lispjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/music"
)

func TestDump(t *testing.T) {
	v := lisp.SExpr([]*lisp.LVal{
		lisp.Number(1.5),
		lisp.String("a"),
		lisp.Symbol("b"),
		lisp.Bool(true),
		lisp.Nil(),
		lisp.Quote(lisp.Number(2)),
	})
	b, err := Dump(v)
	require.NoError(t, err)
	assert.Equal(t, `[1.5,"a","b",true,[],2]`, string(b))

	_, err = Dump(lisp.NoValue())
	assert.Error(t, err)
}

func TestDumpEvents(t *testing.T) {
	step := music.Step{Active: true, Volume: -1, Duration: 0.25}
	track := music.Track{
		Sound:  "kick",
		Steps:  []music.Event{music.Effect{Type: "reverb", Params: []interface{}{0.5}, Target: step}},
		Active: true,
		Bars:   1,
		Time:   16,
	}
	dm := music.DrumMachine{
		Arrangements: []music.Arrangement{music.NewArrangement([]music.Track{track}, true, 2, 0)},
		Tempo:        90,
		Signature:    4,
	}
	b, err := Dump(lisp.Event(dm))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "drumMachine",
		"tempo": 90,
		"signature": 4,
		"arrangements": [{
			"type": "arrangement",
			"active": true,
			"bars": 2,
			"volume": 0,
			"tracks": [{
				"type": "track",
				"soundName": "kick",
				"active": true,
				"bars": 2,
				"time": 16,
				"volume": 0,
				"steps": [{
					"type": "effect",
					"effectType": "reverb",
					"params": [0.5],
					"target": {"type": "step", "active": true, "pitch": 0, "volume": -1, "duration": 0.25}
				}]
			}]
		}]
	}`, string(b))
}

func TestDumpNotes(t *testing.T) {
	seq := music.Sequence{Events: []music.Event{
		music.Note{Pitch: music.NamedPitch("C4"), Duration: 1, Velocity: 0.7, Instrument: "default"},
		music.Chord{Notes: []music.Pitch{music.NumberPitch(60), music.NamedPitch("E4")}, Duration: 2, Velocity: 1, Instrument: "pad"},
	}}
	s := &Serializer{Indent: "  "}
	b, err := s.Dump(lisp.Event(seq))
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  ")
	assert.JSONEq(t, `{
		"type": "sequence",
		"events": [
			{"type": "note", "pitch": "C4", "duration": 1, "velocity": 0.7, "instrument": "default"},
			{"type": "chord", "notes": [60, "E4"], "duration": 2, "velocity": 1, "instrument": "pad"}
		]
	}`, string(b))
}
