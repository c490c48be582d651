package layout

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/staffline/pkg/core/staff"
	"github.com/matzehuels/staffline/pkg/score"
)

func twoNotes() *score.Score {
	return &score.Score{
		Title: "two",
		Notes: []score.Entry{
			{Pitch: 64, Value: "quarter"},
			{Pitch: 67, Value: "quarter"},
		},
	}
}

func TestComputeDefaults(t *testing.T) {
	l := Compute(twoNotes(), 0, 0)

	want := Layout{
		Title:      "two",
		Width:      760,
		Height:     40,
		MarginX:    12,
		TotalBeats: 2,
		Notes: []staff.Note{
			{Pitch: 64, DurationBeats: 1, X: 12, Y: 20},
			{Pitch: 67, DurationBeats: 1, X: 380, Y: 12.5},
		},
	}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Errorf("Compute mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeGeometryPrecedence(t *testing.T) {
	s := twoNotes()
	s.Staff = &score.Staff{Width: 500, Height: 20}

	tests := []struct {
		name          string
		width, height float64
		wantW, wantH  float64
	}{
		{"score staff", 0, 0, 500, 20},
		{"override width", 1000, 0, 1000, 20},
		{"override both", 1000, 80, 1000, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(s, tt.width, tt.height)
			if l.Width != tt.wantW || l.Height != tt.wantH {
				t.Errorf("geometry = %v x %v, want %v x %v", l.Width, l.Height, tt.wantW, tt.wantH)
			}
			if got := l.Notes[0].Y; got != tt.wantH/2 {
				t.Errorf("Notes[0].Y = %v, want %v", got, tt.wantH/2)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name               string
		staff              *score.Staff
		override, fallback Geometry
		wantW, wantH       float64
	}{
		{"engine default", nil, Geometry{}, Geometry{}, 760, 40},
		{"fallback only", nil, Geometry{}, Geometry{500, 20}, 500, 20},
		{"score beats fallback", &score.Staff{Width: 1000, Height: 80}, Geometry{}, Geometry{500, 20}, 1000, 80},
		{"override beats score", &score.Staff{Width: 1000, Height: 80}, Geometry{Width: 300}, Geometry{500, 20}, 300, 80},
		{"staff height only", &score.Staff{Height: 80}, Geometry{}, Geometry{}, 760, 80},
		{"staff width only", &score.Staff{Width: 300}, Geometry{}, Geometry{Height: 20}, 300, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := twoNotes()
			s.Staff = tt.staff
			w, h := Resolve(s, tt.override, tt.fallback)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Resolve() = %v x %v, want %v x %v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestComputePartialStaff(t *testing.T) {
	s := twoNotes()
	s.Staff = &score.Staff{Height: 80}

	l := Compute(s, 0, 0)
	if l.Width != 760 || l.Height != 80 {
		t.Fatalf("geometry = %v x %v, want 760 x 80", l.Width, l.Height)
	}
	if got := l.Notes[1].X; got != 380 {
		t.Errorf("Notes[1].X = %v, want 380", got)
	}
}

func TestMarshalNonFinite(t *testing.T) {
	l := Compute(twoNotes(), math.NaN(), math.Inf(1))

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"width": "NaN"`, `"height": "+Inf"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal output missing %s:\n%s", want, data)
		}
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !math.IsNaN(got.Width) || !math.IsInf(got.Height, 1) {
		t.Errorf("geometry = %v x %v, want NaN x +Inf", got.Width, got.Height)
	}
	if len(got.Notes) != 2 || got.Notes[1].Pitch != 67 {
		t.Errorf("Notes = %+v, want both notes back", got.Notes)
	}
}

func TestFloatUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`12.5`, 12.5},
		{`"-Inf"`, math.Inf(-1)},
		{`"+Inf"`, math.Inf(1)},
		{`null`, 7},
	}
	for _, tt := range tests {
		f := Float(7)
		if err := f.UnmarshalJSON([]byte(tt.in)); err != nil {
			t.Errorf("UnmarshalJSON(%s) error: %v", tt.in, err)
			continue
		}
		if float64(f) != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.in, f, tt.want)
		}
	}

	var f Float
	if err := f.UnmarshalJSON([]byte(`"wide"`)); err == nil {
		t.Error(`UnmarshalJSON("wide") = nil error`)
	}
}

func TestComputeEmpty(t *testing.T) {
	l := Compute(&score.Score{}, 0, 0)
	if l.Notes == nil || len(l.Notes) != 0 {
		t.Errorf("Notes = %#v, want empty non-nil slice", l.Notes)
	}
	if _, _, _, _, ok := l.Bounds(); ok {
		t.Error("Bounds() ok = true for empty layout")
	}
}

func TestBounds(t *testing.T) {
	l := Compute(twoNotes(), 0, 0)
	minX, minY, maxX, maxY, ok := l.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if minX != 12 || maxX != 380 || minY != 12.5 || maxY != 20 {
		t.Errorf("Bounds() = (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestFileRoundTrip(t *testing.T) {
	l := Compute(twoNotes(), 1000, 80)
	path := filepath.Join(t.TempDir(), "two.layout.json")

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("Unmarshal(invalid) = nil error")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadFile(missing) = nil error")
	}
}
