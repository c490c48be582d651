package staff

// Layout constants.
const (
	// DefaultWidth is the staff width of a new engine.
	DefaultWidth = 760.0

	// DefaultHeight is the staff height of a new engine.
	DefaultHeight = 40.0

	// MarginX is the left and right margin inside the staff width.
	MarginX = 12.0

	// ReferencePitch is the MIDI number placed at the vertical centre (E4).
	ReferencePitch = 64

	// FallbackBeats is the spacing used for notes with a non-positive duration.
	FallbackBeats = 0.25

	// StaffSteps is the number of semitones spanning the full staff height.
	StaffSteps = 16.0
)

// Note is a single positioned musical event.
// X and Y are computed by the engine; callers only supply Pitch and DurationBeats.
type Note struct {
	Pitch         int     `json:"pitch"`
	DurationBeats float64 `json:"duration_beats"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// Engine lays out an ordered sequence of notes on a staff.
// The zero value is not ready for use; create engines with [New].
type Engine struct {
	notes  []Note
	width  float64
	height float64
}

// New returns an engine with no notes and the default 760x40 geometry.
func New() *Engine {
	return &Engine{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Close releases the notes held by the engine.
// Calling Close on a nil engine does nothing.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.notes = nil
}

// Clear removes all notes. Geometry is unchanged.
func (e *Engine) Clear() {
	if e == nil {
		return
	}
	e.notes = e.notes[:0]
}

// AddNote appends a note and recomputes every position.
// Any pitch and duration are accepted.
func (e *Engine) AddNote(pitch int, durationBeats float64) {
	if e == nil {
		return
	}
	e.notes = append(e.notes, Note{Pitch: pitch, DurationBeats: durationBeats})
	e.relayout()
}

// SetGeometry stores the staff dimensions and recomputes every position.
// Values are not validated.
func (e *Engine) SetGeometry(width, height float64) {
	if e == nil {
		return
	}
	e.width = width
	e.height = height
	e.relayout()
}

// Geometry returns the current staff width and height.
// A nil engine reports zero dimensions.
func (e *Engine) Geometry() (width, height float64) {
	if e == nil {
		return 0, 0
	}
	return e.width, e.height
}

// NoteCount returns the number of notes, or 0 for a nil engine.
func (e *Engine) NoteCount() int {
	if e == nil {
		return 0
	}
	return len(e.notes)
}

// Note returns a copy of the note at index i.
// The zero Note is returned for a nil engine or an out-of-range index.
func (e *Engine) Note(i int) Note {
	n, _ := e.Lookup(i)
	return n
}

// Lookup returns a copy of the note at index i and whether it exists.
func (e *Engine) Lookup(i int) (Note, bool) {
	if e == nil || i < 0 || i >= len(e.notes) {
		return Note{}, false
	}
	return e.notes[i], true
}

// Notes returns a copy of all notes in reading order.
func (e *Engine) Notes() []Note {
	if e == nil || len(e.notes) == 0 {
		return nil
	}
	out := make([]Note, len(e.notes))
	copy(out, e.notes)
	return out
}

// TotalBeats returns the sum of effective durations of all notes.
func (e *Engine) TotalBeats() float64 {
	if e == nil {
		return 0
	}
	var total float64
	for _, n := range e.notes {
		total += EffectiveDuration(n.DurationBeats)
	}
	return total
}

// EffectiveDuration returns the duration used for spacing: beats when
// positive, otherwise [FallbackBeats].
func EffectiveDuration(beats float64) float64 {
	if beats > 0 {
		return beats
	}
	return FallbackBeats
}

func (e *Engine) relayout() {
	if len(e.notes) == 0 {
		return
	}

	total := e.TotalBeats()
	// Unreachable while FallbackBeats > 0.
	if total <= 0 {
		total = 1
	}

	usable := e.width - 2*MarginX
	step := e.height / StaffSteps
	center := e.height / 2

	var running float64
	for i := range e.notes {
		n := &e.notes[i]
		n.X = MarginX + (running/total)*usable
		running += EffectiveDuration(n.DurationBeats)
		n.Y = center - float64(n.Pitch-ReferencePitch)*step
	}
}
