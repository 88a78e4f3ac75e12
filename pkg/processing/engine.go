// Package processing turns pipeline definition files into coprocess runs.
package processing

import (
	"fmt"
	"log/slog"

	"github.com/aromatt/xcopr/pkg/api"
)

// Runner runs an ordered list of commands as one pipeline.
type Runner interface {
	Run(commands []string) error
}

// RunPipeline renders a definition's commands against the merged context
// and runs them.
func RunPipeline(r Runner, pipeline *api.Pipeline, globalContext map[string]any) error {
	ctx := MergeContext(globalContext, pipeline.Context)

	commands, err := RenderCommands(pipeline.Coproc, ctx)
	if err != nil {
		return fmt.Errorf("rendering commands: %w", err)
	}

	slog.Info("running pipeline",
		"path", pipeline.FilePath,
		"dir", pipeline.Dir,
		"stages", len(commands),
		"stream", pipeline.StreamCount())

	return r.Run(commands)
}

// RunAll runs every definition matching pattern, one after another. The
// first failure stops the run; later definitions are not started.
func RunAll(r Runner, pattern string, globalContext map[string]any) error {
	pipelines, err := DiscoverPipelines(pattern)
	if err != nil {
		return fmt.Errorf("discovering pipelines: %w", err)
	}

	slog.Debug("discovered pipelines", "pattern", pattern, "count", len(pipelines))

	for _, p := range pipelines {
		if err := RunPipeline(r, p, globalContext); err != nil {
			return fmt.Errorf("pipeline %s: %w", p.FilePath, err)
		}
		slog.Debug("pipeline succeeded", "path", p.FilePath)
	}

	return nil
}
