package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/core/staff"
	"github.com/matzehuels/staffline/pkg/layout"
)

const (
	staffLines     = 5
	defaultPadding = 16.0
	titleBand      = 24.0
	minNoteRadius  = 2.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels  bool
	title   string
	padding float64
}

// WithLabels prints each note's pitch name above its head.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle draws a heading above the staff.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithPadding sets the blank border around the staff (default 16).
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) {
		if p >= 0 {
			r.padding = p
		}
	}
}

// RenderSVG draws the staff lines and one filled notehead per note,
// centred at the note's layout position.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{padding: defaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	top := r.padding
	if r.title != "" {
		top += titleBand
	}
	w := math.Max(l.Width, 0) + 2*r.padding
	h := math.Max(l.Height, 0) + top + r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="serif" font-size="16" text-anchor="middle">%s</text>`+"\n",
			w/2, r.padding+titleBand/2, html.EscapeString(r.title))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", r.padding, top)
	renderStaffLines(&buf, l)
	renderNotes(&buf, l, r.labels)
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStaffLines(buf *bytes.Buffer, l layout.Layout) {
	if l.Height <= 0 || l.Width <= 0 {
		return
	}
	gap := l.Height / (staffLines - 1)
	for i := range staffLines {
		y := float64(i) * gap
		fmt.Fprintf(buf, `    <line class="staff-line" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="1"/>`+"\n",
			y, l.Width, y)
	}
}

func renderNotes(buf *bytes.Buffer, l layout.Layout, labels bool) {
	ry := math.Max(l.Height/staff.StaffSteps, minNoteRadius)
	rx := ry * 1.3
	for i, n := range l.Notes {
		if !finite(n.X) || !finite(n.Y) {
			continue
		}
		fmt.Fprintf(buf, `    <ellipse class="note" id="note-%d" cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" transform="rotate(-20 %.2f %.2f)" fill="black"/>`+"\n",
			i, n.X, n.Y, rx, ry, n.X, n.Y)
		if labels {
			fmt.Fprintf(buf, `    <text class="note-label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="10" text-anchor="middle">%s</text>`+"\n",
				n.X, n.Y-ry-3, html.EscapeString(music.PitchName(n.Pitch)))
		}
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
