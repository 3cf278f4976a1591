// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userpravah.toml")
	content := `
framework = "angular"

[exclude]
dirs = ["fixtures"]
files = ["*.spec.ts"]

[output]
formats = ["dot", "json"]
directory = "graphs"
basename = "routes"

[watch]
debounce = "250ms"

[history]
path = ".userpravah/history.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Framework != "angular" {
		t.Errorf("framework = %q", cfg.Framework)
	}
	if len(cfg.Output.Formats) != 2 || cfg.Output.Formats[1] != "json" {
		t.Errorf("formats = %v", cfg.Output.Formats)
	}
	if cfg.Watch.Debounce.Duration != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MinInterval.Duration != 2*time.Second {
		t.Errorf("min_interval default not applied: %v", cfg.Watch.MinInterval)
	}
	if cfg.History.Path != ".userpravah/history.db" {
		t.Errorf("history path = %q", cfg.History.Path)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "dot" {
		t.Errorf("default formats = %v", cfg.Output.Formats)
	}
	if cfg.Output.Basename != "navigation" {
		t.Errorf("default basename = %q", cfg.Output.Basename)
	}
	if cfg.Watch.Debounce.Duration != 500*time.Millisecond {
		t.Errorf("default debounce = %v", cfg.Watch.Debounce)
	}
}
