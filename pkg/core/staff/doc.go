// Package staff positions notes on a single fixed-width staff.
//
// # Overview
//
// An [Engine] holds an ordered sequence of notes and the staff geometry
// (width and height). Every mutation that can change a position triggers a
// full recomputation, so the coordinates read back from the engine always
// reflect the current notes and geometry.
//
// # Horizontal Placement
//
// X encodes elapsed musical time, not note index. Each note starts at its
// cumulative beat offset, scaled across the usable width between two
// [MarginX] margins:
//
//	x = MarginX + (running / totalBeats) * (width - 2*MarginX)
//
// Durations that are zero or negative are spaced as [FallbackBeats]. The
// stored duration is left as given.
//
// # Vertical Placement
//
// Y is a uniform semitone scale centred on [ReferencePitch] (E4). Each
// semitone above moves the note up by height/[StaffSteps]:
//
//	y = height/2 - (pitch - ReferencePitch) * (height / StaffSteps)
//
// Clef, key signature and staff-line spacing are not taken into account.
//
// # Silent Defaults
//
// Nothing in this package returns an error. A nil *Engine behaves as an empty
// engine whose mutators do nothing, an out-of-range [Engine.Note] query
// returns the zero [Note], and degenerate geometry flows straight into the
// layout math. Use [Engine.Lookup] when a real zero note must be told apart
// from an out-of-range index.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Separate engines share no state
// and can be used from different goroutines freely.
package staff
