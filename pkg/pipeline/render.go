package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/observability"
	"github.com/matzehuels/staffline/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(l, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONPitchNames())
		case FormatDOT:
			data = []byte(sink.ToDOT(l))
		case FormatGraph:
			data, err = sink.RenderDOT(ctx, sink.ToDOT(l))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(l layout.Layout, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Title && l.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(l.Title))
	}
	return svgOpts
}
