package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/staffline/pkg/core/music"
	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the positioned
// notes of a score or layout as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [score|layout.json]",
		Short: "Print note positions as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyLayoutConfig(&opts)
			return c.runInspect(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "staff width (scores only)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "staff height (scores only)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	var l layout.Layout
	if isLayoutFile(input) {
		var err error
		if l, err = layout.ReadFile(input); err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
	} else {
		runner, err := c.newRunner(ctx, noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		s, err := runner.Import(ctx, input)
		if err != nil {
			return fmt.Errorf("load score %s: %w", input, err)
		}
		warnGeometry(opts)
		if l, err = runner.Layout(ctx, s, opts); err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	}

	printLayoutSummary(l)
	printNewline()
	if len(l.Notes) == 0 {
		printInfo("No notes")
		return nil
	}
	fmt.Println(noteTable(l).Render())
	return nil
}

// printLayoutSummary prints the layout header as key-value lines.
func printLayoutSummary(l layout.Layout) {
	if l.Title != "" {
		printKeyValue("Title", l.Title)
	}
	printKeyValue("Notes", strconv.Itoa(len(l.Notes)))
	printKeyValue("Beats", formatFloat(l.TotalBeats))
	printKeyValue("Staff", formatFloat(l.Width)+" × "+formatFloat(l.Height))
	if minX, minY, maxX, maxY, ok := l.Bounds(); ok {
		printKeyValue("Extent", fmt.Sprintf("x %.2f..%.2f  y %.2f..%.2f", minX, maxX, minY, maxY))
	}
}

// noteTable builds a table with one row per positioned note.
func noteTable(l layout.Layout) *table.Table {
	rows := make([][]string, len(l.Notes))
	for i, n := range l.Notes {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(n.Pitch),
			music.PitchName(n.Pitch),
			formatFloat(n.DurationBeats),
			fmt.Sprintf("%.2f", n.X),
			fmt.Sprintf("%.2f", n.Y),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numStyle := StyleNumber.Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Pitch", "Name", "Beats", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return StyleNote
			case col >= 3:
				return numStyle
			}
			return StyleDim
		})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
