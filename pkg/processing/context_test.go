package processing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadContextFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "context.yaml")
	if err := os.WriteFile(f, []byte("pattern: error\nlimit: 10\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, err := LoadContextFile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ctx["pattern"] != "error" {
		t.Errorf("expected pattern=error, got %v", ctx["pattern"])
	}
	if ctx["limit"] != 10 {
		t.Errorf("expected limit=10, got %v", ctx["limit"])
	}
}

func TestLoadContextFile_Empty(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "context.yaml")
	if err := os.WriteFile(f, nil, 0600); err != nil {
		t.Fatal(err)
	}

	ctx, err := LoadContextFile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx == nil || len(ctx) != 0 {
		t.Errorf("expected empty non-nil map, got %v", ctx)
	}
}

func TestLoadContextFile_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("{{invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	for _, f := range []string{"/nonexistent/context.yaml", invalid} {
		if _, err := LoadContextFile(f); err == nil {
			t.Errorf("expected error loading %s", f)
		}
	}
}

func TestMergeContext(t *testing.T) {
	global := map[string]any{"a": "global", "b": "global"}
	local := map[string]any{"b": "local", "c": "local"}

	merged := MergeContext(global, local)

	want := map[string]any{"a": "global", "b": "local", "c": "local"}
	if len(merged) != len(want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
	for k, v := range want {
		if merged[k] != v {
			t.Errorf("key %q: expected %v, got %v", k, v, merged[k])
		}
	}
	if global["b"] != "global" {
		t.Error("global context must not be modified")
	}
}

func TestMergeContext_Nil(t *testing.T) {
	merged := MergeContext(nil, nil)
	if merged == nil {
		t.Fatal("expected non-nil map")
	}

	merged = MergeContext(nil, map[string]any{"k": "v"})
	if merged["k"] != "v" {
		t.Errorf("expected k=v, got %v", merged["k"])
	}
}
