package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/layout"
)

// ToDOT converts a layout to Graphviz DOT. Every note becomes a node pinned
// at its layout position (y flipped to Graphviz's bottom-up axis) and edges
// follow reading order. The graph asks for the neato engine so the pins hold.
func ToDOT(l layout.Layout) string {
	var buf bytes.Buffer
	buf.WriteString("digraph staff {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=black, fontcolor=white, fontsize=8, width=0.3, height=0.2, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.4, color=grey];\n")
	if l.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", l.Title)
	}
	buf.WriteString("\n")

	for i, n := range l.Notes {
		if !finite(n.X) || !finite(n.Y) {
			continue
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, pos=\"%.2f,%.2f!\"];\n",
			i, music.PitchName(n.Pitch), n.X, l.Height-n.Y)
	}

	buf.WriteString("\n")
	prev := -1
	for i, n := range l.Notes {
		if !finite(n.X) || !finite(n.Y) {
			continue
		}
		if prev >= 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", prev, i)
		}
		prev = i
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the drawing scales like the staff SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
