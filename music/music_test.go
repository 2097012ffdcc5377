package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteName(t *testing.T) {
	for _, test := range []struct {
		name string
		midi int
	}{
		{"C4", 60},
		{"A4", 69},
		{"C#4", 61},
		{"Db4", 61},
		{"B#3", 60},
		{"Cb4", 59},
		{"C##4", 62},
		{"C", 60},
		{"c4", 60},
		{"C-1", 0},
		{"G9", 127},
		{"F#3", 54},
	} {
		n, err := ParseNoteName(test.name)
		if assert.NoError(t, err, test.name) {
			assert.Equal(t, test.midi, n, test.name)
		}
	}
	for _, name := range []string{"", "H", "C4x", "G#9", "Cb-1", "#4"} {
		_, err := ParseNoteName(name)
		assert.Error(t, err, name)
	}
}

func TestPitch(t *testing.T) {
	p := NamedPitch("E4")
	assert.True(t, p.IsName())
	assert.Equal(t, `"E4"`, p.String())
	n, err := p.MIDI()
	require.NoError(t, err)
	assert.Equal(t, 64.0, n)

	p = NumberPitch(61.5)
	assert.False(t, p.IsName())
	assert.Equal(t, "61.5", p.String())
	n, err = p.MIDI()
	require.NoError(t, err)
	assert.Equal(t, 61.5, n)
}

func TestNewArrangement(t *testing.T) {
	tracks := []Track{
		{Sound: "kick", Time: DefaultTime, Active: true},
		{Sound: "hat", Time: DefaultTime, Active: true, Bars: 1, ExplicitBars: true},
	}
	arr := NewArrangement(tracks, true, 4, -2)
	assert.Equal(t, 4, arr.Tracks[0].Bars)
	assert.Equal(t, 1, arr.Tracks[1].Bars)
	assert.Equal(t, 0, tracks[0].Bars, "arguments must not be modified")
	assert.Equal(t, KindArrangement, arr.Kind())
}

func TestUnwrapStep(t *testing.T) {
	step := Step{Active: true, Volume: -1}
	inner := Effect{Type: "reverb", Target: step}
	outer := Effect{Type: "delay", Params: []interface{}{0.25}, Target: inner}

	s, effects, ok := UnwrapStep(outer)
	require.True(t, ok)
	assert.Equal(t, step, s)
	require.Len(t, effects, 2)
	assert.Equal(t, "delay", effects[0].Type)
	assert.Equal(t, "reverb", effects[1].Type)

	_, _, ok = UnwrapStep(Note{})
	assert.False(t, ok)
	_, _, ok = UnwrapStep(Effect{Type: "reverb"})
	assert.False(t, ok)
}

func TestEffectiveVolume(t *testing.T) {
	arr := Arrangement{Volume: -0.5}
	tr := Track{Volume: -0.5}
	s := Step{Volume: -0.5}
	assert.Equal(t, -1.5, EffectiveVolume(arr, tr, s))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "beatMachine", BeatMachine{}.Kind().String())
	assert.Equal(t, "drumMachine", DrumMachine{}.Kind().String())
	assert.Equal(t, "invalid", Kind(99).String())
}
