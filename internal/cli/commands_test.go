package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/staffline/pkg/cache"
	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/pipeline"
)

const testScore = `title = "Ode"

[[notes]]
pitch = 64
value = "quarter"

[[notes]]
pitch = 64
value = "quarter"

[[notes]]
pitch = 65
value = "quarter"

[[notes]]
pitch = 67
value = "half"
`

func writeScore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ode.toml")
	if err := os.WriteFile(path, []byte(testScore), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI() *CLI {
	return New(&bytes.Buffer{}, LogInfo)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":   []byte("<svg/>"),
		"json":  []byte("{}"),
		"graph": []byte("<svg/>"),
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json", "graph"},
		input:     filepath.Join(dir, "ode.toml"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "ode.svg"),
		filepath.Join(dir, "ode.layout.json"),
		filepath.Join(dir, "ode.graph.svg"),
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
}

func TestWriteArtifactsSingleOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "staff.svg")
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "ode.toml",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read %s = %q, %v", out, data, err)
	}
}

func TestWriteArtifactsMissing(t *testing.T) {
	_, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"pdf"},
		input:     filepath.Join(t.TempDir(), "ode.toml"),
	})
	if err == nil || !strings.Contains(err.Error(), "missing pdf artifact") {
		t.Errorf("err = %v, want missing pdf artifact", err)
	}
}

func TestRunLayout(t *testing.T) {
	input := writeScore(t)

	if err := testCLI().runLayout(context.Background(), input, pipeline.Options{}, "", true); err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}

	l, err := layout.ReadFile(strings.TrimSuffix(input, ".toml") + ".layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Title != "Ode" || len(l.Notes) != 4 || l.TotalBeats != 5 {
		t.Errorf("layout = %q with %d notes over %v beats, want Ode/4/5", l.Title, len(l.Notes), l.TotalBeats)
	}
	if got := l.Notes[0]; got.X != 12 || got.Y != 20 {
		t.Errorf("first note at (%v, %v), want (12, 20)", got.X, got.Y)
	}
}

func TestRunLayoutMissingInput(t *testing.T) {
	err := testCLI().runLayout(context.Background(), filepath.Join(t.TempDir(), "absent.toml"), pipeline.Options{}, "", true)
	if err == nil {
		t.Fatal("expected error for missing score")
	}
}

func TestRunRenderFromScoreAndLayout(t *testing.T) {
	input := writeScore(t)
	c := testCLI()
	ctx := context.Background()

	opts := pipeline.Options{Formats: []string{"svg", "json", "dot"}}
	if err := c.runRender(ctx, input, opts, "", true); err != nil {
		t.Fatalf("runRender(score) error: %v", err)
	}
	base := strings.TrimSuffix(input, ".toml")
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if got := strings.Count(string(svg), `class="note"`); got != 4 {
		t.Errorf("svg has %d notes, want 4", got)
	}
	for _, ext := range []string{".layout.json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("expected %s: %v", base+ext, err)
		}
	}

	out := filepath.Join(t.TempDir(), "again.svg")
	opts = pipeline.Options{Formats: []string{"svg"}, Labels: true}
	if err := c.runRender(ctx, base+".layout.json", opts, out, true); err != nil {
		t.Fatalf("runRender(layout) error: %v", err)
	}
	again, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(again), ">G4<") {
		t.Error("labelled render should name G4")
	}
}

func TestRunInspect(t *testing.T) {
	if err := testCLI().runInspect(context.Background(), writeScore(t), pipeline.Options{}, true); err != nil {
		t.Fatalf("runInspect() error: %v", err)
	}
}

func TestNoteTable(t *testing.T) {
	l := layout.Layout{Width: 760, Height: 40}
	l.Notes = append(l.Notes, noteAt(64, 1, 12, 20), noteAt(67, 2, 380, 12.5))

	out := noteTable(l).Render()
	for _, want := range []string{"Pitch", "E4", "G4", "380.00", "12.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCacheClear(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(ctx, "layout:abc", []byte("{}"), cache.TTLLayout); err != nil {
		t.Fatal(err)
	}

	cmd := testCLI().cacheClearCommand()
	cmd.SetArgs([]string{"--backend", "file"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "layout:abc"); ok {
		t.Error("entry should be gone after cache clear")
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := testCLI()
	ctx := context.Background()

	for _, backend := range []string{"", backendFile, backendMemory, backendNone} {
		ch, err := c.newCache(ctx, backend)
		if err != nil {
			t.Errorf("newCache(%q) error: %v", backend, err)
			continue
		}
		ch.Close()
	}
	if _, err := c.newCache(ctx, "etcd"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
