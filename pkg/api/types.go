package api

const (
	// DefaultStream is the stream count used when a definition omits it.
	DefaultStream = 1
	// MaxStream is the largest accepted stream count.
	MaxStream = 255
)

// Pipeline is the pipeline definition file format.
type Pipeline struct {
	Context map[string]any `yaml:"context"`
	Coproc  []string       `yaml:"coproc"`

	// Stream is accepted and validated but currently has no effect.
	Stream int `yaml:"stream"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StreamCount returns Stream, or DefaultStream when it is unset.
func (p *Pipeline) StreamCount() int {
	if p.Stream == 0 {
		return DefaultStream
	}
	return p.Stream
}
