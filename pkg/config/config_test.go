package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/discokit/disco-gen/pkg/discovery"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disco-gen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
package: library
out: /tmp/out/library.go
runtimeImport: example.com/custom/dispatch
directoryUrl: https://index.example.com/apis
allVersions: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Package != "library" {
		t.Errorf("Package = %q", cfg.Package)
	}
	if cfg.Out != "/tmp/out/library.go" {
		t.Errorf("Out = %q", cfg.Out)
	}
	if cfg.RuntimeImport != "example.com/custom/dispatch" {
		t.Errorf("RuntimeImport = %q", cfg.RuntimeImport)
	}
	if cfg.DirectoryURL != "https://index.example.com/apis" {
		t.Errorf("DirectoryURL = %q", cfg.DirectoryURL)
	}
	if !cfg.AllVersions {
		t.Error("AllVersions not set")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "package: library\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DirectoryURL != discovery.DefaultDirectoryURL {
		t.Errorf("DirectoryURL = %q, expected the public directory", cfg.DirectoryURL)
	}
	if cfg.RuntimeImport != "" {
		t.Errorf("RuntimeImport = %q, expected empty so generation applies its default", cfg.RuntimeImport)
	}
	if cfg.AllVersions {
		t.Error("AllVersions must default to false so listings stay preferred-only")
	}
}

func TestLoadAbsolutizesOut(t *testing.T) {
	cfg, err := Load(writeConfig(t, "out: generated/library.go\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !filepath.IsAbs(cfg.Out) {
		t.Errorf("Out = %q, expected an absolute path", cfg.Out)
	}
	if !strings.HasSuffix(cfg.Out, filepath.Join("generated", "library.go")) {
		t.Errorf("Out = %q lost its relative tail", cfg.Out)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "package: [\n")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
