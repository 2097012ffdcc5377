package music

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitch is the pitch of a note, written either as a note name ("C4", "F#3",
// "Bb2") or as a MIDI note number.
type Pitch struct {
	Name string
	Num  float64
}

// NamedPitch returns the pitch of a note name.
func NamedPitch(name string) Pitch {
	return Pitch{Name: name}
}

// NumberPitch returns the pitch of a MIDI note number.
func NumberPitch(x float64) Pitch {
	return Pitch{Num: x}
}

// IsName returns true if p was written as a note name.
func (p Pitch) IsName() bool {
	return p.Name != ""
}

func (p Pitch) String() string {
	if p.IsName() {
		return strconv.Quote(p.Name)
	}
	return formatNum(p.Num)
}

// MIDI returns the MIDI note number of p.
func (p Pitch) MIDI() (float64, error) {
	if !p.IsName() {
		return p.Num, nil
	}
	n, err := ParseNoteName(p.Name)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

var semitones = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// DefaultOctave is the octave of a note name written without one.
const DefaultOctave = 4

// ParseNoteName returns the MIDI note number for a note name made of a
// letter, any number of accidentals ('#' or 'b') and an optional octave.  C4
// is 60.
func ParseNoteName(name string) (int, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("empty note name")
	}
	offset, ok := semitones[byte(strings.ToUpper(s[:1])[0])]
	if !ok {
		return 0, fmt.Errorf("invalid note name: %q", name)
	}
	s = s[1:]
	for len(s) > 0 && (s[0] == '#' || s[0] == 'b') {
		if s[0] == '#' {
			offset++
		} else {
			offset--
		}
		s = s[1:]
	}
	octave := DefaultOctave
	if s != "" {
		var err error
		octave, err = strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid octave in note name: %q", name)
		}
	}
	n := (octave+1)*12 + offset
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("note out of range: %q", name)
	}
	return n, nil
}
