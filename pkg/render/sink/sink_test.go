package sink

import (
	"context"
	"encoding/json"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/score"
)

func testLayout() layout.Layout {
	return layout.Compute(&score.Score{
		Title: "Ode <to> Joy",
		Notes: []score.Entry{
			{Pitch: 64, Value: "quarter"},
			{Pitch: 64, Value: "quarter"},
			{Pitch: 65, Value: "quarter"},
			{Pitch: 67, Value: "half"},
		},
	}, 0, 0)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("output does not start with <svg: %q", svg[:20])
	}
	if got := strings.Count(svg, `class="staff-line"`); got != 5 {
		t.Errorf("staff lines = %d, want 5", got)
	}
	if got := strings.Count(svg, `class="note"`); got != 4 {
		t.Errorf("noteheads = %d, want 4", got)
	}
	if strings.Contains(svg, "note-label") {
		t.Error("labels rendered without WithLabels")
	}
	if !strings.Contains(svg, `cx="12.00" cy="20.00"`) {
		t.Error("first notehead not at (12, 20)")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := testLayout()
	svg := string(RenderSVG(l, WithLabels(), WithTitle(l.Title), WithPadding(0)))

	if got := strings.Count(svg, `class="note-label"`); got != 4 {
		t.Errorf("labels = %d, want 4", got)
	}
	if !strings.Contains(svg, ">E4<") || !strings.Contains(svg, ">G4<") {
		t.Error("pitch names missing from labels")
	}
	if !strings.Contains(svg, "Ode &lt;to&gt; Joy") {
		t.Error("title not escaped")
	}
	// title band only, no padding
	if !strings.Contains(svg, `viewBox="0 0 760.0 64.0"`) {
		t.Errorf("unexpected viewBox in %q", svg[:120])
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(layout.Layout{Width: 760, Height: 40}))
	if got := strings.Count(svg, `class="note"`); got != 0 {
		t.Errorf("noteheads = %d, want 0", got)
	}
	if got := strings.Count(svg, `class="staff-line"`); got != 5 {
		t.Errorf("staff lines = %d, want 5", got)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout(), WithJSONPitchNames())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 760 || out.Height != 40 {
		t.Errorf("geometry = %v x %v, want 760 x 40", out.Width, out.Height)
	}
	if out.TotalBeats != 5 {
		t.Errorf("TotalBeats = %v, want 5", out.TotalBeats)
	}
	if len(out.Notes) != 4 {
		t.Fatalf("Notes count = %d, want 4", len(out.Notes))
	}
	if out.Notes[3].Index != 3 || out.Notes[3].Name != "G4" {
		t.Errorf("Notes[3] = %+v, want index 3 named G4", out.Notes[3])
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(layout.Layout{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"notes": []`) {
		t.Errorf("empty layout should serialize notes as [], got %s", data)
	}
}

func TestRenderJSONNonFinite(t *testing.T) {
	l := testLayout()
	l.Width = math.NaN()
	l.Notes[0].X = math.Inf(-1)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	for _, want := range []string{`"width": "NaN"`, `"x": "-Inf"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout())

	if !strings.HasPrefix(dot, "digraph staff {") {
		t.Errorf("unexpected header: %q", dot[:20])
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("missing neato layout attribute")
	}
	if got := len(regexp.MustCompile(`(?m)^  n\d+ \[`).FindAllString(dot, -1)); got != 4 {
		t.Errorf("nodes = %d, want 4", got)
	}
	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("edges = %d, want 3", got)
	}
	// y is flipped: first note sits at the vertical middle either way
	if !strings.Contains(dot, `n0 [label="E4", pos="12.00,20.00!"]`) {
		t.Errorf("first node not pinned at 12,20:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="306.40,22.50!"`) {
		t.Errorf("F4 not flipped to 22.5:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %q", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() modified svg without viewBox: %q", got)
	}
}

func TestRenderDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz render in short mode")
	}
	svg, err := RenderDOT(context.Background(), ToDOT(testLayout()))
	if err != nil {
		t.Fatalf("RenderDOT() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderDOT output is not SVG")
	}
}

func TestExportedDeclsDocumented(t *testing.T) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			for _, decl := range file.Decls {
				switch d := decl.(type) {
				case *ast.FuncDecl:
					if d.Name.IsExported() && d.Recv == nil && d.Doc == nil {
						t.Errorf("%s: func %s has no doc comment", fset.Position(d.Pos()), d.Name)
					}
				case *ast.GenDecl:
					if d.Tok != token.TYPE {
						continue
					}
					for _, spec := range d.Specs {
						ts := spec.(*ast.TypeSpec)
						if ts.Name.IsExported() && d.Doc == nil && ts.Doc == nil {
							t.Errorf("%s: type %s has no doc comment", fset.Position(ts.Pos()), ts.Name)
						}
					}
				}
			}
		}
	}
}
