// Package layout is the serialization format for computed staff layouts.
//
// A [Layout] is a snapshot of a [staff.Engine] after recomputation: the staff
// geometry plus every note with its x/y position. It is what the CLI writes
// to layout.json, what the pipeline caches, and what every renderer consumes.
//
//	l := layout.Compute(s, 0, 0) // geometry from the score, else engine defaults
//	data, _ := layout.Marshal(l)
package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/staffline/pkg/core/staff"
	"github.com/matzehuels/staffline/pkg/score"
)

// Layout is a positioned note sequence with the geometry it was computed for.
type Layout struct {
	Title      string       `json:"title,omitempty"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	MarginX    float64      `json:"margin_x"`
	TotalBeats float64      `json:"total_beats"`
	Notes      []staff.Note `json:"notes"`
}

// FromEngine snapshots the engine's current notes and geometry.
func FromEngine(e *staff.Engine, title string) Layout {
	w, h := e.Geometry()
	notes := e.Notes()
	if notes == nil {
		notes = []staff.Note{}
	}
	return Layout{
		Title:      title,
		Width:      w,
		Height:     h,
		MarginX:    staff.MarginX,
		TotalBeats: e.TotalBeats(),
		Notes:      notes,
	}
}

// Geometry is a requested staff size. A zero field leaves that dimension
// to the next source.
type Geometry struct {
	Width, Height float64
}

// Resolve picks each dimension from the first source that sets it: the
// override, then the score's staff, then the fallback, then the engine
// default. Width and height are resolved independently.
func Resolve(s *score.Score, override, fallback Geometry) (w, h float64) {
	var fromScore Geometry
	if s.Staff != nil {
		fromScore = Geometry{s.Staff.Width, s.Staff.Height}
	}
	w, h = staff.DefaultWidth, staff.DefaultHeight
	for _, g := range []Geometry{fallback, fromScore, override} {
		if g.Width != 0 {
			w = g.Width
		}
		if g.Height != 0 {
			h = g.Height
		}
	}
	return w, h
}

// Compute lays out a score on a fresh engine. A zero width or height is
// taken from the score's staff, falling back to the engine defaults.
func Compute(s *score.Score, width, height float64) Layout {
	return ComputeWith(s, Geometry{width, height}, Geometry{})
}

// ComputeWith lays out a score with the geometry chosen by [Resolve].
func ComputeWith(s *score.Score, override, fallback Geometry) Layout {
	w, h := Resolve(s, override, fallback)

	e := staff.New()
	defer e.Close()

	e.SetGeometry(w, h)
	for _, n := range s.Notes {
		e.AddNote(n.Pitch, n.DurationBeats())
	}
	return FromEngine(e, s.Title)
}

// Bounds returns the extent of all note positions.
// ok is false when the layout has no notes.
func (l Layout) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(l.Notes) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range l.Notes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY, true
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Notes == nil {
		l.Notes = []staff.Note{}
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
