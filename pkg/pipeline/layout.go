package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/staffline/pkg/layout"
	"github.com/matzehuels/staffline/pkg/observability"
	"github.com/matzehuels/staffline/pkg/score"
)

// ComputeLayout validates the score and lays it out on a fresh engine.
// Hooks are notified around the computation.
func ComputeLayout(ctx context.Context, s *score.Score, opts Options) (layout.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(s.Notes))
	start := time.Now()

	if err := s.Validate(); err != nil {
		hooks.OnLayoutComplete(ctx, len(s.Notes), time.Since(start), err)
		return layout.Layout{}, err
	}

	l := layout.ComputeWith(s,
		layout.Geometry{Width: opts.Width, Height: opts.Height},
		layout.Geometry{Width: opts.DefaultWidth, Height: opts.DefaultHeight})
	hooks.OnLayoutComplete(ctx, len(l.Notes), time.Since(start), nil)
	return l, nil
}
