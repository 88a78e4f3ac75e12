package api

import (
	"fmt"
	"strings"
)

// Validate checks the pipeline definition for errors.
func (p *Pipeline) Validate() error {
	if len(p.Coproc) == 0 {
		return fmt.Errorf("pipeline has no coproc commands")
	}

	for i, command := range p.Coproc {
		if strings.TrimSpace(command) == "" {
			return fmt.Errorf("coproc %d: command is empty", i)
		}
	}

	if p.Stream < 0 || p.Stream > MaxStream {
		return fmt.Errorf("stream %d is out of range (1-%d)", p.Stream, MaxStream)
	}

	return nil
}
