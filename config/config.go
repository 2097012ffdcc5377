// Package config loads command configuration from .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/luthersystems/beatlisp/lisp"
	"github.com/luthersystems/beatlisp/music"
	"github.com/luthersystems/beatlisp/player"
)

// Environment variables read by Load.
const (
	EnvTempo          = "BEATLISP_TEMPO"
	EnvMaxDepth       = "BEATLISP_MAX_DEPTH"
	EnvLegacyBrackets = "BEATLISP_LEGACY_BRACKETS"
	EnvDebug          = "BEATLISP_DEBUG"
	EnvSentryDSN      = "SENTRY_DSN"
	EnvMIDITicks      = "BEATLISP_MIDI_TICKS"
	EnvSampleRate     = "BEATLISP_SAMPLE_RATE"
)

// Config contains configuration for the beatlisp commands
type Config struct {
	Tempo          float64 // tempo of events played outside a drum machine
	MaxDepth       int     // evaluation depth limit
	LegacyBrackets bool    // allow any closing bracket to close any list
	Debug          bool    // debug logging
	SentryDSN      string  // Sentry DSN (optional)
	MIDITicks      int     // ticks per quarter note in exported MIDI files
	SampleRate     int     // audio sample rate
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Tempo:      music.DefaultTempo,
		MaxDepth:   lisp.DefaultMaxDepth,
		MIDITicks:  960,
		SampleRate: player.DefaultSampleRate,
	}
}

// Load reads the given .env files (".env" when none are given) and the
// environment.  Variables set in the environment take precedence over the
// files.  Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	dotenv := make(map[string]string)
	for _, file := range files {
		vars, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range vars {
			dotenv[k] = v
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
}

// FromLookup returns the default configuration overridden by the variables
// that lookup finds.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	var err error
	if v, ok := lookup(EnvTempo); ok {
		c.Tempo, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || c.Tempo <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", EnvTempo, v)
		}
	}
	if v, ok := lookup(EnvMaxDepth); ok {
		c.MaxDepth, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvMaxDepth, v)
		}
	}
	if v, ok := lookup(EnvLegacyBrackets); ok {
		c.LegacyBrackets, err = parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvLegacyBrackets, v)
		}
	}
	if v, ok := lookup(EnvDebug); ok {
		c.Debug, err = parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvDebug, v)
		}
	}
	if v, ok := lookup(EnvSentryDSN); ok {
		c.SentryDSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMIDITicks); ok {
		c.MIDITicks, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil || c.MIDITicks <= 0 || c.MIDITicks > 0x7fff {
			return nil, fmt.Errorf("invalid %s: %q", EnvMIDITicks, v)
		}
	}
	if v, ok := lookup(EnvSampleRate); ok {
		c.SampleRate, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil || c.SampleRate <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", EnvSampleRate, v)
		}
	}
	return c, nil
}

func parseBool(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
