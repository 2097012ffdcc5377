package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, 120.0, c.Tempo)
	assert.Equal(t, 10000, c.MaxDepth)
	assert.Equal(t, 960, c.MIDITicks)
	assert.Equal(t, 44100, c.SampleRate)
	assert.False(t, c.LegacyBrackets)
}

func TestFromLookup(t *testing.T) {
	c, err := FromLookup(lookupMap(map[string]string{
		EnvTempo:          "96",
		EnvMaxDepth:       "500",
		EnvLegacyBrackets: "true",
		EnvDebug:          "",
		EnvSentryDSN:      " https://key@sentry.example/1 ",
		EnvMIDITicks:      "480",
		EnvSampleRate:     "48000",
	}))
	require.NoError(t, err)
	assert.Equal(t, 96.0, c.Tempo)
	assert.Equal(t, 500, c.MaxDepth)
	assert.True(t, c.LegacyBrackets)
	assert.False(t, c.Debug)
	assert.Equal(t, "https://key@sentry.example/1", c.SentryDSN)
	assert.Equal(t, 480, c.MIDITicks)
	assert.Equal(t, 48000, c.SampleRate)
}

func TestFromLookupInvalid(t *testing.T) {
	for _, kv := range [][2]string{
		{EnvTempo, "fast"},
		{EnvTempo, "0"},
		{EnvMaxDepth, "deep"},
		{EnvLegacyBrackets, "maybe"},
		{EnvDebug, "2"},
		{EnvMIDITicks, "0"},
		{EnvMIDITicks, "40000"},
		{EnvSampleRate, "-1"},
	} {
		_, err := FromLookup(lookupMap(map[string]string{kv[0]: kv[1]}))
		assert.Error(t, err, "%s=%s", kv[0], kv[1])
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	err := os.WriteFile(path, []byte("BEATLISP_TEMPO=100\nBEATLISP_SAMPLE_RATE=22050\n"), 0600)
	require.NoError(t, err)

	t.Setenv(EnvSampleRate, "32000")
	c, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, c.Tempo)
	assert.Equal(t, 32000, c.SampleRate, "the environment overrides .env files")
}
