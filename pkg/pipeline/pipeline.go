// Package pipeline runs the import → layout → render pipeline for staffline.
//
// The CLI commands and the interactive editor share this package so caching,
// validation and logging behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Read a score file (TOML, YAML, JSON or Standard MIDI File)
//  2. Layout: Feed the notes through a staff engine and snapshot the positions
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	s, err := runner.Import(ctx, "ode.toml")
//	result, err := runner.Execute(ctx, s, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.Layout(ctx, s, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/staffline/pkg/cache"
	errs "github.com/matzehuels/staffline/pkg/errors"
	"github.com/matzehuels/staffline/pkg/layout"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph" // DOT rendered to SVG by Graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	switch format {
	case FormatGraph:
		return "graph.svg"
	case FormatJSON:
		return "layout.json"
	default:
		return format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Layout options. Zero keeps the score's staff size, then the
	// DefaultWidth/DefaultHeight fallback, then the engine default.
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	DefaultWidth  float64 `json:"default_width,omitempty"`
	DefaultHeight float64 `json:"default_height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Title   bool     `json:"title,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ScoreHash is the content hash of the canonical score.
	ScoreHash string

	// Layout is the computed staff layout.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NoteCount  int
	TotalBeats float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		DefaultWidth:  o.DefaultWidth,
		DefaultHeight: o.DefaultHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options a format ignores are left out so they don't split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Labels, k.Title = o.Labels, o.Title
	case FormatPNG:
		k.Labels, k.Title, k.Scale = o.Labels, o.Title, o.Scale
	}
	return k
}
