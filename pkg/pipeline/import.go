package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/staffline/pkg/observability"
	"github.com/matzehuels/staffline/pkg/score"
)

// Import reads a score file, choosing the decoder by extension.
func Import(ctx context.Context, path string) (*score.Score, error) {
	format, err := score.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, string(format), path)
	start := time.Now()

	s, err := score.ReadFile(path)
	n := 0
	if s != nil {
		n = len(s.Notes)
	}
	hooks.OnImportComplete(ctx, string(format), path, n, time.Since(start), err)
	return s, err
}
