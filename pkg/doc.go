// Package pkg provides the core libraries for staffline.
//
// # Overview
//
// Staffline places notes on a single five-line musical staff: each note's
// horizontal position follows the time elapsed before it, and its vertical
// position follows its pitch. The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (the staff layout engine and musical vocabulary)
//  2. [score] - Score documents (TOML, YAML, JSON, Standard MIDI File import)
//  3. [layout] - Serializable engine output
//  4. [render] - Output sinks (SVG, PNG, PDF, JSON, Graphviz DOT)
//  5. [pipeline] - Orchestration (import → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Score file (.toml / .yaml / .json / .mid)
//	         ↓
//	    [score] package (decode + validate pitches and note values)
//	         ↓
//	    [core/staff] engine (add notes, recompute positions)
//	         ↓
//	    [layout] package (snapshot of positioned notes)
//	         ↓
//	    [render/sink] package → SVG/PNG/PDF/JSON/DOT
//
// # Quick Start
//
// Lay out a score and render it:
//
//	import (
//	    "github.com/matzehuels/staffline/pkg/layout"
//	    "github.com/matzehuels/staffline/pkg/render/sink"
//	    "github.com/matzehuels/staffline/pkg/score"
//	)
//
//	s, _ := score.ReadFile("ode.toml")
//	l := layout.Compute(s, 0, 0) // 760×40 unless the score sets a staff size
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// Or drive the engine directly:
//
//	e := staff.New()
//	defer e.Close()
//	e.AddNote(64, 1)   // E4, quarter
//	e.AddNote(67, 1)   // G4, quarter
//	n := e.Note(1)     // n.X == 380, n.Y == 12.5
//
// # Main Packages
//
// [core/staff] - The layout engine. Owns the note list and staff geometry
// and recomputes every position after each AddNote or SetGeometry.
//
// [core/music] - Note values, pitch spelling and MIDI note names.
//
// [score] - The editable note list: decoding, validation and replay into an
// engine.
//
// [layout] - Positioned notes with the geometry that produced them.
//
// [render/sink] - Output formats. [render] converts SVG to PDF and PNG.
//
// [pipeline] - The import → layout → render pipeline shared by all CLI
// commands, with content-addressed caching.
//
// [cache] - File, memory, Redis and null cache backends.
//
// [observability] - Hooks for pipeline and cache events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                       # All tests
//	go test -short ./...                                # Skip Graphviz rendering
//	STAFFLINE_TEST_REDIS=localhost:6379 go test ./pkg/cache  # Include Redis
//
// [core]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/core
// [core/staff]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/core/staff
// [core/music]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/core/music
// [score]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/score
// [layout]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/staffline/pkg/errors
package pkg
