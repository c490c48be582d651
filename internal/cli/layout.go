package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/core/staff"
	errs "github.com/matzehuels/staffline/pkg/errors"
	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/pipeline"
)

// layoutCommand creates the layout command for computing note positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [score]",
		Short: "Compute note positions for a score",
		Long: `Compute note positions for a score.

The layout command reads a score (.toml, .yaml, .json or a Standard MIDI File)
and places every note on the staff: x by elapsed beats, y by pitch. The result
is written as <score>.layout.json, which 'render' and 'inspect' accept directly.

Width and height default to the score's [staff] table, then to the config
file, then to 760x40.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyLayoutConfig(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "staff width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "staff height")

	return cmd
}

// runLayout loads the score, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	s, err := runner.Import(ctx, input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}
	warnGeometry(opts)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Laid out %d notes", len(l.Notes)))

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Notes), l.TotalBeats, cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// warnGeometry reports requested staff sizes the engine will accept but
// that produce a degenerate drawing.
func warnGeometry(opts pipeline.Options) {
	if opts.Width == 0 && opts.Height == 0 {
		return
	}
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = staff.DefaultWidth
	}
	if h == 0 {
		h = staff.DefaultHeight
	}
	if err := errs.ValidateGeometry(w, h); err != nil {
		printWarning("%s", errs.UserMessage(err))
	}
}
