package sink

import (
	"encoding/json"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	names bool
}

// WithJSONPitchNames adds a spelled pitch name ("C#4") to every note.
func WithJSONPitchNames() JSONOption { return func(r *jsonRenderer) { r.names = true } }

type jsonOutput struct {
	Title      string       `json:"title,omitempty"`
	Width      layout.Float `json:"width"`
	Height     layout.Float `json:"height"`
	MarginX    layout.Float `json:"margin_x"`
	TotalBeats layout.Float `json:"total_beats"`
	Notes      []jsonNote   `json:"notes"`
}

type jsonNote struct {
	Index         int          `json:"index"`
	Pitch         int          `json:"pitch"`
	Name          string       `json:"name,omitempty"`
	DurationBeats layout.Float `json:"duration_beats"`
	X             layout.Float `json:"x"`
	Y             layout.Float `json:"y"`
}

// RenderJSON exports the layout as a pretty-printed JSON document.
// Notes appear in insertion order with their index. Non-finite values are
// written as the strings "NaN", "+Inf" and "-Inf".
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:      l.Title,
		Width:      layout.Float(l.Width),
		Height:     layout.Float(l.Height),
		MarginX:    layout.Float(l.MarginX),
		TotalBeats: layout.Float(l.TotalBeats),
		Notes:      make([]jsonNote, len(l.Notes)),
	}
	for i, n := range l.Notes {
		jn := jsonNote{
			Index:         i,
			Pitch:         n.Pitch,
			DurationBeats: layout.Float(n.DurationBeats),
			X:             layout.Float(n.X),
			Y:             layout.Float(n.Y),
		}
		if r.names {
			jn.Name = music.PitchName(n.Pitch)
		}
		out.Notes[i] = jn
	}

	return json.MarshalIndent(out, "", "  ")
}
