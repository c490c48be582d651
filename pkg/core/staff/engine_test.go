package staff

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDefaults(t *testing.T) {
	e := New()
	defer e.Close()

	w, h := e.Geometry()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Geometry() = %v x %v, want %v x %v", w, h, DefaultWidth, DefaultHeight)
	}
	if e.NoteCount() != 0 {
		t.Errorf("NoteCount() = %d, want 0", e.NoteCount())
	}
}

func TestTwoNoteScenario(t *testing.T) {
	e := New()
	e.AddNote(64, 1.0)
	e.AddNote(67, 1.0)

	want := []Note{
		{Pitch: 64, DurationBeats: 1, X: 12, Y: 20},
		{Pitch: 67, DurationBeats: 1, X: 380, Y: 12.5},
	}
	if diff := cmp.Diff(want, e.Notes()); diff != "" {
		t.Errorf("Notes() mismatch (-want +got):\n%s", diff)
	}

	e.SetGeometry(1000, 80)

	want = []Note{
		{Pitch: 64, DurationBeats: 1, X: 12, Y: 40},
		{Pitch: 67, DurationBeats: 1, X: 500, Y: 25},
	}
	if diff := cmp.Diff(want, e.Notes()); diff != "" {
		t.Errorf("Notes() after SetGeometry mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstNoteAtMargin(t *testing.T) {
	tests := []struct {
		name  string
		notes [][2]float64
	}{
		{"single", [][2]float64{{60, 1}}},
		{"zero duration first", [][2]float64{{60, 0}, {62, 2}}},
		{"many", [][2]float64{{60, 0.5}, {62, 4}, {64, 0.25}, {65, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			for _, n := range tt.notes {
				e.AddNote(int(n[0]), n[1])
			}
			if got := e.Note(0).X; got != MarginX {
				t.Errorf("Note(0).X = %v, want %v", got, MarginX)
			}
		})
	}
}

func TestXWithinMargins(t *testing.T) {
	e := New()
	durations := []float64{1, 0.5, 2, 0, -3, 0.125, 4, 1.5}
	for i, d := range durations {
		e.AddNote(60+i, d)
	}

	for _, width := range []float64{25, 100, 760, 2000} {
		e.SetGeometry(width, 40)
		for i, n := range e.Notes() {
			if n.X < MarginX || n.X > width-MarginX {
				t.Errorf("width %v: note %d X = %v, outside [%v, %v]", width, i, n.X, MarginX, width-MarginX)
			}
		}
	}
}

func TestXFollowsElapsedBeats(t *testing.T) {
	e := New()
	e.AddNote(60, 2)
	e.AddNote(60, 1)
	e.AddNote(60, 1)

	// total 4 beats across 736 units
	wantX := []float64{12, 12 + 0.5*736, 12 + 0.75*736}
	for i, want := range wantX {
		if got := e.Note(i).X; got != want {
			t.Errorf("Note(%d).X = %v, want %v", i, got, want)
		}
	}
}

func TestNonPositiveDurationFallback(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
	}{
		{"zero", 0},
		{"negative", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.AddNote(64, tt.duration)
			e.AddNote(64, 0.25)

			// Both notes count as 0.25 beats, so the second starts halfway.
			if got, want := e.Note(1).X, 12+0.5*736; got != want {
				t.Errorf("Note(1).X = %v, want %v", got, want)
			}
			if got := e.Note(0).DurationBeats; got != tt.duration {
				t.Errorf("stored DurationBeats = %v, want %v", got, tt.duration)
			}
			if got := e.TotalBeats(); got != 0.5 {
				t.Errorf("TotalBeats() = %v, want 0.5", got)
			}
		})
	}
}

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.0625, 0.0625},
		{0, FallbackBeats},
		{-1, FallbackBeats},
		{math.NaN(), FallbackBeats},
	}

	for _, tt := range tests {
		if got := EffectiveDuration(tt.in); got != tt.want {
			t.Errorf("EffectiveDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPitchToY(t *testing.T) {
	tests := []struct {
		pitch int
		want  float64
	}{
		{64, 20},
		{65, 20 - 2.5},
		{63, 20 + 2.5},
		{72, 0},
		{56, 40},
	}

	for _, tt := range tests {
		e := New()
		e.AddNote(tt.pitch, 1)
		if got := e.Note(0).Y; got != tt.want {
			t.Errorf("pitch %d: Y = %v, want %v", tt.pitch, got, tt.want)
		}
	}
}

func TestYDecreasesWithPitch(t *testing.T) {
	e := New()
	for p := 40; p <= 90; p++ {
		e.AddNote(p, 1)
	}

	notes := e.Notes()
	for i := 1; i < len(notes); i++ {
		if notes[i].Y >= notes[i-1].Y {
			t.Fatalf("Y not decreasing: pitch %d Y=%v, pitch %d Y=%v",
				notes[i-1].Pitch, notes[i-1].Y, notes[i].Pitch, notes[i].Y)
		}
	}
}

func TestNoteSentinel(t *testing.T) {
	e := New()
	if diff := cmp.Diff(Note{}, e.Note(0)); diff != "" {
		t.Errorf("empty engine Note(0) mismatch (-want +got):\n%s", diff)
	}

	e.AddNote(70, 2)
	for _, i := range []int{-1, 1, 100} {
		if got := e.Note(i); got != (Note{}) {
			t.Errorf("Note(%d) = %+v, want zero Note", i, got)
		}
		if _, ok := e.Lookup(i); ok {
			t.Errorf("Lookup(%d) ok = true, want false", i)
		}
	}

	if n, ok := e.Lookup(0); !ok || n.Pitch != 70 {
		t.Errorf("Lookup(0) = %+v, %v; want pitch 70, true", n, ok)
	}
}

func TestLookupZeroValuedNote(t *testing.T) {
	e := New()
	e.AddNote(0, 0)

	n, ok := e.Lookup(0)
	if !ok {
		t.Fatal("Lookup(0) ok = false, want true")
	}
	if n.Pitch != 0 || n.DurationBeats != 0 {
		t.Errorf("Lookup(0) = %+v, want pitch 0 duration 0", n)
	}
	if n.Y != 180 {
		t.Errorf("Lookup(0).Y = %v, want 180", n.Y)
	}
}

func TestClear(t *testing.T) {
	e := New()
	e.SetGeometry(500, 60)
	e.AddNote(64, 1)
	e.AddNote(65, 1)

	e.Clear()

	if e.NoteCount() != 0 {
		t.Errorf("NoteCount() after Clear = %d, want 0", e.NoteCount())
	}
	if got := e.Note(0); got != (Note{}) {
		t.Errorf("Note(0) after Clear = %+v, want zero Note", got)
	}
	if w, h := e.Geometry(); w != 500 || h != 60 {
		t.Errorf("Geometry() after Clear = %v x %v, want 500 x 60", w, h)
	}

	// Notes added after a clear lay out against the kept geometry.
	e.AddNote(64, 1)
	if got := e.Note(0); got.X != 12 || got.Y != 30 {
		t.Errorf("Note(0) = %+v, want X=12 Y=30", got)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	e := New()
	pitches := []int{72, 60, 67, 64, 55}
	for _, p := range pitches {
		e.AddNote(p, 1)
	}

	for i, p := range pitches {
		if got := e.Note(i).Pitch; got != p {
			t.Errorf("Note(%d).Pitch = %d, want %d", i, got, p)
		}
	}
}

func TestNotesReturnsCopy(t *testing.T) {
	e := New()
	e.AddNote(64, 1)

	notes := e.Notes()
	notes[0].Pitch = 99

	if e.Note(0).Pitch != 64 {
		t.Error("mutating Notes() result changed engine state")
	}
}

func TestDegenerateGeometry(t *testing.T) {
	e := New()
	e.AddNote(64, 1)
	e.AddNote(66, 1)

	e.SetGeometry(0, 0)
	if got := e.Note(1); got.X != 0 || got.Y != 0 {
		// x = 12 + 0.5*(0-24) = 0, y = 0 - 2*0 = 0
		t.Errorf("zero geometry Note(1) = %+v, want X=0 Y=0", got)
	}

	e.SetGeometry(-100, 16)
	if got := e.Note(1).X; got != 12+0.5*(-124) {
		t.Errorf("negative width Note(1).X = %v, want %v", got, 12+0.5*(-124))
	}

	e.SetGeometry(math.NaN(), 40)
	if got := e.Note(1).X; !math.IsNaN(got) {
		t.Errorf("NaN width Note(1).X = %v, want NaN", got)
	}
	if got := e.Note(0).X; !math.IsNaN(got) {
		// 0 * NaN is NaN
		t.Errorf("NaN width Note(0).X = %v, want NaN", got)
	}
}

func TestSetGeometryOnEmptyEngine(t *testing.T) {
	e := New()
	e.SetGeometry(300, 30)
	if e.NoteCount() != 0 {
		t.Errorf("NoteCount() = %d, want 0", e.NoteCount())
	}
	e.AddNote(64, 1)
	if got := e.Note(0).Y; got != 15 {
		t.Errorf("Note(0).Y = %v, want 15", got)
	}
}

func TestNilEngine(t *testing.T) {
	var e *Engine

	// None of these may panic.
	e.Clear()
	e.AddNote(64, 1)
	e.SetGeometry(100, 10)
	e.Close()

	if e.NoteCount() != 0 {
		t.Errorf("nil NoteCount() = %d, want 0", e.NoteCount())
	}
	if got := e.Note(0); got != (Note{}) {
		t.Errorf("nil Note(0) = %+v, want zero Note", got)
	}
	if e.Notes() != nil {
		t.Error("nil Notes() should be nil")
	}
	if e.TotalBeats() != 0 {
		t.Errorf("nil TotalBeats() = %v, want 0", e.TotalBeats())
	}
}

func TestIndependentEngines(t *testing.T) {
	a, b := New(), New()
	a.AddNote(64, 1)
	b.SetGeometry(200, 20)

	if b.NoteCount() != 0 {
		t.Errorf("b.NoteCount() = %d, want 0", b.NoteCount())
	}
	if w, _ := a.Geometry(); w != DefaultWidth {
		t.Errorf("a width = %v, want %v", w, DefaultWidth)
	}
}

func TestClose(t *testing.T) {
	e := New()
	e.AddNote(64, 1)
	e.Close()

	if e.NoteCount() != 0 {
		t.Errorf("NoteCount() after Close = %d, want 0", e.NoteCount())
	}
}
