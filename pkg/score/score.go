// Package score models the host-side note list that feeds the layout engine.
//
// A [Score] is what a user edits and saves: an ordered list of entries, each
// with a MIDI pitch and a duration given either in beats or as a note value.
// Scores are read from TOML, YAML or JSON documents, or imported from
// Standard MIDI Files:
//
//	title = "Etude"
//
//	[staff]
//	width = 760.0
//	height = 40.0
//
//	[[notes]]
//	pitch = 64
//	value = "quarter"
//
//	[[notes]]
//	pitch = 67
//	beats = 1.5
//
// [Apply] replays a score into a [staff.Engine]. Pitch sanitizing lives here
// rather than in the engine, which accepts any integer.
package score

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/core/staff"
	errs "github.com/matzehuels/staffline/pkg/errors"
)

// Score is an ordered note list with optional staff geometry.
type Score struct {
	Title    string  `toml:"title,omitempty" yaml:"title,omitempty" json:"title,omitempty"`
	Composer string  `toml:"composer,omitempty" yaml:"composer,omitempty" json:"composer,omitempty"`
	Staff    *Staff  `toml:"staff,omitempty" yaml:"staff,omitempty" json:"staff,omitempty"`
	Notes    []Entry `toml:"notes" yaml:"notes" json:"notes"`
}

// Staff holds the geometry a score asks to be laid out with.
type Staff struct {
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Entry is one note of a score. Beats takes precedence over Value.
type Entry struct {
	Pitch  int      `toml:"pitch" yaml:"pitch" json:"pitch"`
	Beats  *float64 `toml:"beats,omitempty" yaml:"beats,omitempty" json:"beats,omitempty"`
	Value  string   `toml:"value,omitempty" yaml:"value,omitempty" json:"value,omitempty"`
	Dotted bool     `toml:"dotted,omitempty" yaml:"dotted,omitempty" json:"dotted,omitempty"`
}

// Beats returns a pointer to b, for building entries in code.
func Beats(b float64) *float64 { return &b }

// DurationBeats returns the entry's length in beats. An explicit Beats value
// is returned as is; otherwise Value is resolved as a note value, lengthened
// by half when Dotted. Entries with neither, or with an unknown Value,
// report 0 and are spaced by the engine's fallback.
func (e Entry) DurationBeats() float64 {
	if e.Beats != nil {
		return *e.Beats
	}
	if e.Value == "" {
		return 0
	}
	d, err := music.ParseDuration(e.Value)
	if err != nil {
		return 0
	}
	if e.Dotted {
		return music.Dotted(d)
	}
	return d.Beats()
}

// Validate checks every entry's pitch range and note value.
func (s *Score) Validate() error {
	for i, e := range s.Notes {
		if err := errs.ValidatePitch(e.Pitch); err != nil {
			return errs.New(errs.ErrCodeInvalidPitch, "note %d: %s", i+1, errs.UserMessage(err))
		}
		if e.Beats == nil && e.Value != "" {
			if _, err := music.ParseDuration(e.Value); err != nil {
				return errs.New(errs.ErrCodeInvalidDuration, "note %d: %s", i+1, errs.UserMessage(err))
			}
		}
	}
	return nil
}

// TotalBeats sums the written durations of all entries.
func (s *Score) TotalBeats() float64 {
	var total float64
	for _, e := range s.Notes {
		total += e.DurationBeats()
	}
	return total
}

// Append adds a note with the given pitch and length in beats.
func (s *Score) Append(pitch int, beats float64) {
	s.Notes = append(s.Notes, Entry{Pitch: pitch, Beats: Beats(beats)})
}

// Apply replaces the engine's notes with the score's entries, in order.
// The engine geometry is set first when the score carries one.
func Apply(s *Score, e *staff.Engine) {
	e.Clear()
	if s.Staff != nil {
		e.SetGeometry(s.Staff.Width, s.Staff.Height)
	}
	for _, n := range s.Notes {
		e.AddNote(n.Pitch, n.DurationBeats())
	}
}

// FromEngine builds a score from the notes currently held by e.
func FromEngine(e *staff.Engine, title string) *Score {
	w, h := e.Geometry()
	s := &Score{Title: title, Staff: &Staff{Width: w, Height: h}}
	for _, n := range e.Notes() {
		s.Append(n.Pitch, n.DurationBeats)
	}
	return s
}

// Canonical returns a stable encoding of the score for hashing. Every field
// that reaches the layout is included; floats are printed in their shortest
// exact form, so NaN and the infinities hash like any other value.
func Canonical(s *Score) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "title=%q composer=%q", s.Title, s.Composer)
	if s.Staff != nil {
		fmt.Fprintf(&b, " staff=%v,%v", s.Staff.Width, s.Staff.Height)
	}
	for _, e := range s.Notes {
		fmt.Fprintf(&b, "\n%d", e.Pitch)
		if e.Beats != nil {
			fmt.Fprintf(&b, " beats=%v", *e.Beats)
		}
		if e.Value != "" {
			fmt.Fprintf(&b, " value=%q", e.Value)
		}
		if e.Dotted {
			b.WriteString(" dotted")
		}
	}
	return b.Bytes()
}
