package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/staffline/pkg/core/staff"
)

// Float is a float64 that survives JSON when it is not finite. NaN and the
// infinities encode as the strings "NaN", "+Inf" and "-Inf"; every other
// value encodes as a plain number.
type Float float64

// MarshalJSON implements [json.Marshaler].
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements [json.Unmarshaler]. It accepts numbers, the
// strings written by MarshalJSON, and null (which leaves f unchanged).
func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf", "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*f = Float(v)
	return nil
}

type wireLayout struct {
	Title      string     `json:"title,omitempty"`
	Width      Float      `json:"width"`
	Height     Float      `json:"height"`
	MarginX    Float      `json:"margin_x"`
	TotalBeats Float      `json:"total_beats"`
	Notes      []wireNote `json:"notes"`
}

type wireNote struct {
	Pitch         int   `json:"pitch"`
	DurationBeats Float `json:"duration_beats"`
	X             Float `json:"x"`
	Y             Float `json:"y"`
}

// MarshalJSON implements [json.Marshaler]. Non-finite geometry and
// positions are written as [Float] strings.
func (l Layout) MarshalJSON() ([]byte, error) {
	w := wireLayout{
		Title:      l.Title,
		Width:      Float(l.Width),
		Height:     Float(l.Height),
		MarginX:    Float(l.MarginX),
		TotalBeats: Float(l.TotalBeats),
		Notes:      make([]wireNote, len(l.Notes)),
	}
	for i, n := range l.Notes {
		w.Notes[i] = wireNote{
			Pitch:         n.Pitch,
			DurationBeats: Float(n.DurationBeats),
			X:             Float(n.X),
			Y:             Float(n.Y),
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (l *Layout) UnmarshalJSON(data []byte) error {
	var w wireLayout
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Layout{
		Title:      w.Title,
		Width:      float64(w.Width),
		Height:     float64(w.Height),
		MarginX:    float64(w.MarginX),
		TotalBeats: float64(w.TotalBeats),
	}
	if w.Notes != nil {
		l.Notes = make([]staff.Note, len(w.Notes))
		for i, n := range w.Notes {
			l.Notes[i] = staff.Note{
				Pitch:         n.Pitch,
				DurationBeats: float64(n.DurationBeats),
				X:             float64(n.X),
				Y:             float64(n.Y),
			}
		}
	}
	return nil
}
