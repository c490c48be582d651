package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/pipeline"
)

// renderCommand creates the render command, which goes from a score or a
// computed layout to output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [score|layout.json]",
		Short: "Render a score or layout to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a score or layout to SVG, PNG, PDF, JSON or DOT.

The input is either a score file, which is laid out first, or a
<name>.layout.json produced by 'layout'. Formats:

  svg    five-line staff with noteheads
  png    SVG rasterized with rsvg-convert (requires librsvg)
  pdf    SVG converted with rsvg-convert (requires librsvg)
  json   positioned notes with pitch names
  dot    Graphviz source with notes pinned at their positions
  graph  the DOT graph drawn to SVG by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.applyRenderConfig(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "print pitch names above noteheads")
	cmd.Flags().BoolVar(&opts.Title, "title", false, "draw the score title above the staff")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "staff width (scores only)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "staff height (scores only)")

	return cmd
}

// runRender lays out the input when needed, renders it, and writes the files.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var (
		l         layout.Layout
		layoutHit bool
	)
	if isLayoutFile(input) {
		if l, err = layout.ReadFile(input); err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
		layoutHit = true
	} else {
		s, err := runner.Import(ctx, input)
		if err != nil {
			return fmt.Errorf("load score %s: %w", input, err)
		}
		warnGeometry(opts)
		if l, layoutHit, err = runner.LayoutWithCacheInfo(ctx, s, opts); err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Notes), l.TotalBeats, layoutHit && renderHit)
	return nil
}
