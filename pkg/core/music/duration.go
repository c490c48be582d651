package music

import (
	"strings"

	errs "github.com/matzehuels/staffline/pkg/errors"
)

// Duration is a written note value.
type Duration int

// Note values from longest to shortest.
const (
	Whole Duration = iota
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth
)

// Durations lists every note value from longest to shortest.
var Durations = []Duration{Whole, Half, Quarter, Eighth, Sixteenth, ThirtySecond, SixtyFourth}

var durationNames = [...]string{"whole", "half", "quarter", "eighth", "sixteenth", "thirty-second", "sixty-fourth"}

// aliases maps short names to note values.
var aliases = map[string]Duration{
	"w": Whole,
	"h": Half,
	"q": Quarter,
	"e": Eighth,
	"s": Sixteenth,
	"t": ThirtySecond,
	"x": SixtyFourth,

	"1":  Whole,
	"2":  Half,
	"4":  Quarter,
	"8":  Eighth,
	"16": Sixteenth,
	"32": ThirtySecond,
	"64": SixtyFourth,
}

// Beats returns the length of d in quarter-note beats.
func (d Duration) Beats() float64 {
	switch d {
	case Whole:
		return 4
	case Half:
		return 2
	case Quarter:
		return 1
	case Eighth:
		return 0.5
	case Sixteenth:
		return 0.25
	case ThirtySecond:
		return 0.125
	case SixtyFourth:
		return 0.0625
	}
	return 0
}

// String returns the lowercase name of the note value.
func (d Duration) String() string {
	if d < Whole || d > SixtyFourth {
		return "unknown"
	}
	return durationNames[d]
}

// FlagCount returns the number of flags drawn on an unbeamed stem.
func (d Duration) FlagCount() int {
	if d <= Quarter {
		return 0
	}
	return int(d - Quarter)
}

// Dotted returns the length of a dotted d in beats.
func Dotted(d Duration) float64 {
	return d.Beats() * 1.5
}

// FromBeats returns the note value nearest to beats. Values above a dotted
// half round to Whole; anything shorter than a 48th rounds to SixtyFourth.
func FromBeats(beats float64) Duration {
	switch {
	case beats >= 3.5:
		return Whole
	case beats >= 1.5:
		return Half
	case beats >= 0.75:
		return Quarter
	case beats >= 0.375:
		return Eighth
	case beats >= 0.1875:
		return Sixteenth
	case beats >= 0.09375:
		return ThirtySecond
	default:
		return SixtyFourth
	}
}

// ParseDuration resolves a note value by name ("quarter", "thirty-second"),
// short alias ("q", "e") or denominator ("4", "8"). Matching ignores case.
func ParseDuration(name string) (Duration, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range durationNames {
		if key == n || key == strings.ReplaceAll(n, "-", "") {
			return Duration(i), nil
		}
	}
	if d, ok := aliases[key]; ok {
		return d, nil
	}
	return 0, errs.New(errs.ErrCodeInvalidDuration, "unknown note value %q", name)
}
