package processing

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadContextFile reads the global template context from a YAML mapping.
// An empty file yields an empty, non-nil context.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	ctx := make(map[string]any)
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file %s: %w", filename, err)
	}
	return ctx, nil
}

// MergeContext layers a pipeline's own context over the global one.
// Only top-level keys are merged; neither input is modified.
func MergeContext(global, local map[string]any) map[string]any {
	merged := maps.Clone(global)
	if merged == nil {
		merged = make(map[string]any, len(local))
	}
	maps.Copy(merged, local)
	return merged
}
