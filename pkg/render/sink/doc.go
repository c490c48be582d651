// Package sink provides output format renderers for staff layouts.
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: five-line staff with a notehead per note
//   - JSON: layout data export for external tools
//   - DOT: Graphviz graph with every note pinned at its layout position
//   - PDF/PNG: SVG converted via rsvg-convert
//
// Basic usage:
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithTitle(l.Title))
//	png, err := sink.RenderPNG(l, sink.WithScale(2), sink.WithPNGSVGOptions(sink.WithLabels()))
//
// Sinks never modify the layout and are safe to call concurrently.
//
// [layout.Layout]: github.com/matzehuels/staffline/pkg/layout.Layout
package sink
