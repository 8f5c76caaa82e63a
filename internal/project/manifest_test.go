package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[generate]
static_accessor_methods = true
copyable_types = ["java.lang.CharSequence", "com.example.Money"]
jobs = 4
out_dir = "gen"
inputs = ["decls"]

[diagnostics]
max = 50
format = "short"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = %v, %v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("Root = %q, want %q", m.Root, root)
	}
	if m.OutDir() != filepath.Join(root, "gen") {
		t.Fatalf("OutDir = %q", m.OutDir())
	}
	if in := m.Inputs(); len(in) != 1 || in[0] != filepath.Join(root, "decls") {
		t.Fatalf("Inputs = %v", in)
	}
	cfg := m.Config.GenConfig()
	if !cfg.StaticAccessorMethods || len(cfg.CopyableTypes) != 2 || cfg.MaxDiagnostics != 50 {
		t.Fatalf("GenConfig = %+v", cfg)
	}
	if m.Config.Generate.Jobs != 4 || m.Config.Diagnostics.Format != "short" {
		t.Fatalf("Config = %+v", m.Config)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Skip("declgen.toml present above the temp dir")
	}
}

func TestDefaultsApplyToPartialManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[generate]\njobs = 2\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Diagnostics.Format != "pretty" {
		t.Fatalf("default format lost: %q", cfg.Diagnostics.Format)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "[generate]\nstatic_accessors = true\n",
		"negative jobs":  "[generate]\njobs = -1\n",
		"bad format":     "[diagnostics]\nformat = \"xml\"\n",
		"empty format":   "[diagnostics]\nformat = \"\"\n",
		"bad copyable":   "[generate]\ncopyable_types = [\"java..String\"]\n",
		"negative limit": "[diagnostics]\nmax = -3\n",
	}
	for name, body := range cases {
		path := writeManifest(t, t.TempDir(), body)
		_, err := LoadConfig(path)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[generate\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
