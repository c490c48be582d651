// Package render turns computed staff layouts into viewable output.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). The sinks in [sink] produce the SVG:
//
//	svg := sink.RenderSVG(l, sink.WithLabels())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Sinks
//
// The [sink] subpackage holds one renderer per output format: SVG staff
// drawings, layout JSON, and Graphviz DOT with pinned note positions.
//
// [sink]: github.com/matzehuels/staffline/pkg/render/sink
package render
