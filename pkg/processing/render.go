package processing

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// RenderCommands expands each command as a text/template with sprig
// functions. Referencing a key that is not in data is an error.
func RenderCommands(commands []string, data map[string]any) ([]string, error) {
	rendered := make([]string, 0, len(commands))
	for i, command := range commands {
		out, err := renderCommand(fmt.Sprintf("coproc[%d]", i), command, data)
		if err != nil {
			return nil, fmt.Errorf("coproc %d: %w", i, err)
		}
		if strings.TrimSpace(out) == "" {
			return nil, fmt.Errorf("coproc %d: command %q rendered empty", i, command)
		}
		rendered = append(rendered, out)
	}
	return rendered, nil
}

func renderCommand(name, command string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.FuncMap()).
		Option("missingkey=error").
		Parse(command)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
