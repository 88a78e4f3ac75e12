package processing

import (
	"strings"
	"testing"
)

func TestRenderCommands(t *testing.T) {
	data := map[string]any{
		"pattern": "it's",
		"fields":  []any{"1", "3"},
	}

	got, err := RenderCommands([]string{
		"cat",
		"grep -F {{ .pattern | squote }}",
		"cut -f {{ .fields | join \",\" }}",
		"{{ upper \"sort\" | lower }} -u",
	}, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"cat",
		"grep -F 'it's'",
		"cut -f 1,3",
		"sort -u",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRenderCommands_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantErr string
	}{
		{"parse error", "echo {{ .x", "coproc 0: parsing template"},
		{"missing key", "echo {{ .undefined }}", "coproc 0: executing template"},
		{"renders empty", "{{ if false }}cat{{ end }}", "rendered empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderCommands([]string{tt.command}, map[string]any{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
