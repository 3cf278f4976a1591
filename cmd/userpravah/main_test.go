package main

import (
	"testing"

	"github.com/ksrpraneeth/UserPravah/internal/config"
)

func TestApplyFlagOverrides_Formats(t *testing.T) {
	cfg := config.Default()

	old := *formats
	defer func() { *formats = old }()
	*formats = "json, Mermaid ,"

	applyFlagOverrides(cfg)

	if len(cfg.Output.Formats) != 2 {
		t.Fatalf("expected 2 formats, got %v", cfg.Output.Formats)
	}
	if cfg.Output.Formats[0] != "json" || cfg.Output.Formats[1] != "mermaid" {
		t.Fatalf("unexpected formats: %v", cfg.Output.Formats)
	}
}

func TestApplyFlagOverrides_Framework(t *testing.T) {
	cfg := config.Default()

	old := *framework
	defer func() { *framework = old }()
	*framework = " Angular "

	applyFlagOverrides(cfg)

	if cfg.Framework != "angular" {
		t.Fatalf("expected angular, got %q", cfg.Framework)
	}
}

func TestResolveLogPath_UsesXDGStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path := resolveLogPath()
	if path != "/tmp/state/userpravah/userpravah.log" {
		t.Fatalf("unexpected log path: %s", path)
	}
}
