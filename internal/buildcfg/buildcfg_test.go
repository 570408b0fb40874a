package buildcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestFindWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "[capability]\nsimple_decl_macro = true\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected to find the config")
	}
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestFindMissingIsNotAnError(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no config in an empty tree")
	}
}

func TestLoadRequiresCapabilityTable(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "# empty\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a config without [capability]")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Config{Capability: Capability{SimpleDeclMacro: true}}
	cfg.Capability.Stamp("rustc 1.99.0-nightly (abc 2026-01-01)", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if !got.Capability.SimpleDeclMacro {
		t.Error("expected simple_decl_macro to round-trip as true")
	}
	if got.Capability.ProbedWith != cfg.Capability.ProbedWith {
		t.Errorf("expected probed_with %q, got %q", cfg.Capability.ProbedWith, got.Capability.ProbedWith)
	}
	if got.Capability.ProbedAt != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected probed_at: %q", got.Capability.ProbedAt)
	}
}

func TestDiscoverParsesNearestConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[capability]\nsimple_decl_macro = false\n")

	cfg, path, ok, err := Discover(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected to discover the config")
	}
	if cfg.Capability.SimpleDeclMacro {
		t.Error("expected simple_decl_macro to be false")
	}
	if filepath.Dir(path) != root {
		t.Errorf("expected the config in %s, got %s", root, path)
	}
}
