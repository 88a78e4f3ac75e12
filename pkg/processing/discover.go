package processing

import (
	"fmt"
	"slices"

	"github.com/aromatt/xcopr/pkg/api"
	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverPipelines loads every regular file matching the doublestar
// pattern (for example "pipelines/**/*.xcopr.yaml") in lexical path order.
// A pattern that matches nothing is an error.
func DiscoverPipelines(pattern string) ([]*api.Pipeline, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pipeline file pattern %q", pattern)
	}

	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no pipeline files match %q", pattern)
	}

	slices.Sort(paths)
	return loadAll(paths)
}

func loadAll(paths []string) ([]*api.Pipeline, error) {
	pipelines := make([]*api.Pipeline, 0, len(paths))
	for _, p := range paths {
		pipeline, err := api.LoadPipeline(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		pipelines = append(pipelines, pipeline)
	}
	return pipelines, nil
}
