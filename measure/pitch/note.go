package pitch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Errors returned by note conversion functions.
var (
	ErrInvalidFrequency = errors.New("pitch: frequency must be positive and finite")
	ErrInvalidNote      = errors.New("pitch: invalid note name")
)

// ReferenceA4 is the tuning reference in Hz.
const ReferenceA4 = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is the musical note nearest to a frequency, in twelve-tone equal
// temperament with A4 = 440 Hz.
type Note struct {
	Name   string  // pitch class, e.g. "A", "C#"
	Octave int     // scientific pitch notation octave, 4 for A4
	MIDI   int     // MIDI note number, 69 for A4
	Cents  float64 // deviation from the nearest note in cents, in [-50, 50]
}

// String formats the note in scientific pitch notation, e.g. "A4".
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// NoteFromFrequency converts a frequency in Hz to the nearest musical note.
func NoteFromFrequency(freq float64) (Note, error) {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return Note{}, ErrInvalidFrequency
	}

	// Signed semitone distance from A4.
	semitones := 12 * math.Log2(freq/ReferenceA4)
	nearest := math.Round(semitones)

	midi := 69 + int(nearest)

	// A4 sits 9 semitones above C4.
	index := int(math.Mod(nearest+9, 12))
	if index < 0 {
		index += 12
	}

	octave := 4 + int(math.Floor((nearest+9)/12))

	return Note{
		Name:   noteNames[index],
		Octave: octave,
		MIDI:   midi,
		Cents:  100 * (semitones - nearest),
	}, nil
}

// NoteFrequency converts a note in scientific pitch notation, e.g. "A4" or
// "C#3", to its equal-temperament frequency in Hz.
func NoteFrequency(name string) (float64, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}

	split := 1
	if name[1] == '#' {
		split = 2
	}

	index := -1
	for i, n := range noteNames {
		if n == name[:split] {
			index = i
			break
		}
	}

	if index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}

	octave, err := strconv.Atoi(name[split:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}

	midi := (octave+1)*12 + index

	return ReferenceA4 * math.Pow(2, float64(midi-69)/12), nil
}
