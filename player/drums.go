package player

import "strings"

// DrumChannel is the MIDI channel reserved for percussion (channel 10).
const DrumChannel = 9

// gmDrums maps sound names to General MIDI percussion keys.
var gmDrums = map[string]uint8{
	"kick":       36,
	"bd":         36,
	"rim":        37,
	"snare":      38,
	"sd":         38,
	"clap":       39,
	"hat":        42,
	"hihat":      42,
	"hh":         42,
	"closed-hat": 42,
	"pedal-hat":  44,
	"open-hat":   46,
	"oh":         46,
	"tom-low":    45,
	"tom":        47,
	"tom-mid":    47,
	"tom-high":   50,
	"crash":      49,
	"ride":       51,
	"cowbell":    56,
	"shaker":     70,
}

// DrumKey returns the General MIDI percussion key of a sound name.  Names are
// matched case-insensitively, first exactly and then by the family of drum
// they name (e.g. "kick2" is a kick).
func DrumKey(sound string) (uint8, bool) {
	name := strings.ToLower(sound)
	if key, ok := gmDrums[name]; ok {
		return key, true
	}
	switch drumFamily(name) {
	case "kick":
		return gmDrums["kick"], true
	case "snare":
		return gmDrums["snare"], true
	case "clap":
		return gmDrums["clap"], true
	case "hat":
		if strings.Contains(name, "open") {
			return gmDrums["open-hat"], true
		}
		return gmDrums["hat"], true
	case "cymbal":
		return gmDrums["crash"], true
	}
	return 0, false
}

// drumFamily classifies a sound name by the kind of drum it names, or
// returns the empty string.
func drumFamily(sound string) string {
	name := strings.ToLower(sound)
	switch {
	case strings.Contains(name, "kick"), strings.HasPrefix(name, "bd"):
		return "kick"
	case strings.Contains(name, "snare"), strings.HasPrefix(name, "sd"):
		return "snare"
	case strings.Contains(name, "clap"):
		return "clap"
	case strings.Contains(name, "hat"), strings.HasPrefix(name, "hh"), name == "oh":
		return "hat"
	case strings.Contains(name, "crash"), strings.Contains(name, "ride"), strings.Contains(name, "cymbal"):
		return "cymbal"
	}
	return ""
}
