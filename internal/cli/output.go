package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/staffline/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path; "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format and returns the paths written.
// A single format with an explicit output path is written exactly there;
// otherwise files are named <base>.<ext>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	single := len(p.formats) == 1 && p.output != ""
	base := basePath(p.output, p.input)

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}

		path := base + "." + pipeline.Extension(format)
		if single {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return paths, fmt.Errorf("open %s: %w", path, err)
		}
		_, werr := out.Write(data)
		cerr := out.Close()
		if werr != nil {
			return paths, fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return paths, fmt.Errorf("close %s: %w", path, cerr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
