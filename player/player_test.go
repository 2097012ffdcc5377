package player

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/luthersystems/beatlisp/schedule"
)

func testTimeline() *schedule.Timeline {
	return &schedule.Timeline{
		Triggers: []schedule.Trigger{
			{At: 0, Duration: 125 * time.Millisecond, Sound: "kick", Rate: 1, Velocity: 0.7, Gain: 1},
			{At: 250 * time.Millisecond, Duration: 500 * time.Millisecond, Sound: "default",
				Pitched: true, Note: 64, Pitch: 4, Rate: schedule.Rate(4), Velocity: 0.7, Gain: 1},
			{At: 500 * time.Millisecond, Duration: 125 * time.Millisecond, Sound: "vox",
				Pitch: 2, Rate: schedule.Rate(2), Velocity: 1, Gain: 0.5},
		},
		Length: time.Second,
	}
}

func TestDrumKey(t *testing.T) {
	for _, test := range []struct {
		sound string
		key   uint8
		ok    bool
	}{
		{"kick", 36, true},
		{"Kick2", 36, true},
		{"snare", 38, true},
		{"clap", 39, true},
		{"hat", 42, true},
		{"open-hat", 46, true},
		{"open hat", 46, true},
		{"crash", 49, true},
		{"ride", 51, true},
		{"big-ride", 49, true},
		{"cowbell", 56, true},
		{"vox", 0, false},
	} {
		key, ok := DrumKey(test.sound)
		assert.Equal(t, test.ok, ok, test.sound)
		assert.Equal(t, test.key, key, test.sound)
	}
}

func TestMIDIKey(t *testing.T) {
	tl := testTimeline()
	ch, key := midiKey(tl.Triggers[0])
	assert.Equal(t, uint8(DrumChannel), ch)
	assert.Equal(t, uint8(36), key)
	ch, key = midiKey(tl.Triggers[1])
	assert.Equal(t, uint8(0), ch)
	assert.Equal(t, uint8(64), key)
	ch, key = midiKey(tl.Triggers[2])
	assert.Equal(t, uint8(0), ch)
	assert.Equal(t, uint8(62), key)
}

func TestWriteSMF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSMF(&buf, testTimeline(), SMFOptions{})
	require.NoError(t, err)
	require.True(t, buf.Len() > 14)
	assert.Equal(t, "MThd", buf.String()[:4])

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)
	assert.Equal(t, smf.MetricTicks(960), s.TimeFormat)

	var ch, key, vel uint8
	var ons, offs int
	for _, ev := range s.Tracks[0] {
		switch {
		case midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel):
			ons++
		case midi.Message(ev.Message).GetNoteEnd(&ch, &key):
			offs++
		}
	}
	assert.Equal(t, 3, ons)
	assert.Equal(t, 3, offs)
}

func TestRender(t *testing.T) {
	tl := testTimeline()
	voices := NewVoices(nil)
	pcm := Render(tl, 8000, voices)
	assert.True(t, len(pcm) >= 8000)
	var peak float32
	for _, x := range pcm {
		assert.True(t, x >= -1 && x <= 1)
		if x > peak {
			peak = x
		}
	}
	assert.True(t, peak > 0)

	empty := Render(&schedule.Timeline{Length: 500 * time.Millisecond}, 1000, voices)
	assert.Len(t, empty, 500)
}

func TestSample(t *testing.T) {
	s := &Sample{SampleRate: 4, Data: []float32{0, 1, 0, -1, 0, 1, 0, -1}}
	out := s.Render(schedule.Trigger{Rate: 1, Velocity: 1, Gain: 1}, 4)
	assert.Equal(t, s.Data, out)

	out = s.Render(schedule.Trigger{Rate: 2, Velocity: 1, Gain: 0.5}, 4)
	assert.Equal(t, []float32{0, 0, 0, 0}, out)

	out = s.Render(schedule.Trigger{Rate: 0.5, Velocity: 1, Gain: 1}, 4)
	require.Len(t, out, 16)
	assert.Equal(t, float32(0.5), out[1])
}

func TestVoices(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	voices := NewVoices(logger)
	s := &Sample{SampleRate: 44100, Data: []float32{1}}
	voices.Register("kick", s)
	assert.Equal(t, s, voices.Voice("kick"))
	assert.Equal(t, Synth{}, voices.Voice("snare"))
	assert.Contains(t, logs.String(), "sound=snare")
}

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, clip(3))
	assert.Equal(t, -1.0, clip(-3))
	assert.Equal(t, 0.25, clip(0.25))
}

func TestLogSink(t *testing.T) {
	var logs bytes.Buffer
	sink := &LogSink{Logger: slog.New(slog.NewTextHandler(&logs, nil))}
	err := sink.Play(context.Background(), testTimeline())
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(logs.String(), "msg=trigger"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink = &LogSink{Logger: slog.New(slog.NewTextHandler(&logs, nil)), Realtime: true}
	err = sink.Play(ctx, &schedule.Timeline{
		Triggers: []schedule.Trigger{{At: time.Hour, Sound: "kick"}},
		Length:   time.Hour,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
