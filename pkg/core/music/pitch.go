package music

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/staffline/pkg/errors"
)

// MIDI note number bounds and the staff's reference pitch.
const (
	MinPitch       = errs.MinPitch
	MaxPitch       = errs.MaxPitch
	ReferencePitch = 64 // E4
)

// PitchClass is a natural note name.
type PitchClass int

// Natural pitch classes.
const (
	C PitchClass = iota
	D
	E
	F
	G
	A
	B
)

var classNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}
var classOffsets = [...]int{0, 2, 4, 5, 7, 9, 11}

// Semitones returns the offset of the class above C.
func (c PitchClass) Semitones() int {
	if c < C || c > B {
		return 0
	}
	return classOffsets[c]
}

func (c PitchClass) String() string {
	if c < C || c > B {
		return "?"
	}
	return classNames[c]
}

// Accidental alters a natural pitch by a semitone.
type Accidental int

// Accidentals. None and Natural both leave the pitch unchanged.
const (
	None Accidental = iota
	Sharp
	Flat
	Natural
)

// Semitones returns the alteration in semitones.
func (a Accidental) Semitones() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	}
	return 0
}

// Symbol returns the printed accidental sign, or "" for None.
func (a Accidental) Symbol() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	case Natural:
		return "♮"
	}
	return ""
}

// Pitch is a spelled pitch.
type Pitch struct {
	Class      PitchClass
	Octave     int
	Accidental Accidental
}

// MIDI returns the MIDI note number (C4 = 60).
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + p.Class.Semitones() + p.Accidental.Semitones()
}

// Frequency returns the equal-tempered frequency in Hz with A4 = 440.
func (p Pitch) Frequency() float64 {
	return 440 * math.Pow(2, float64(p.MIDI()-69)/12)
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%s%d", p.Class, p.Accidental.Symbol(), p.Octave)
}

var sharpNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName returns the display name of a MIDI note number using sharps,
// e.g. 64 -> "E4", 61 -> "C#4". Negative numbers yield negative octaves.
func PitchName(midi int) string {
	pc := ((midi % 12) + 12) % 12
	octave := (midi-pc)/12 - 1
	return fmt.Sprintf("%s%d", sharpNames[pc], octave)
}
