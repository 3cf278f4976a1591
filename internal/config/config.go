// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Framework string  `toml:"framework"` // "" = auto-detect
	Exclude   Exclude `toml:"exclude"`
	Output    Output  `toml:"output"`
	Watch     Watch   `toml:"watch"`
	History   History `toml:"history"`
	Telemetry Telemetry `toml:"telemetry"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	Formats   []string `toml:"formats"` // dot, json, mermaid, openapi
	Directory string   `toml:"directory"`
	Basename  string   `toml:"basename"`
	Title     string   `toml:"title"`
}

type Watch struct {
	Debounce    Duration `toml:"debounce"`
	MinInterval Duration `toml:"min_interval"`
}

// Duration accepts human-readable values like "250ms" in the TOML file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type History struct {
	Path string `toml:"path"` // "" disables run snapshots
}

type Telemetry struct {
	MetricsAddr  string `toml:"metrics_addr"`  // "" disables the /metrics server
	OTLPEndpoint string `toml:"otlp_endpoint"` // "" disables tracing
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"dot"}
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "."
	}
	if cfg.Output.Basename == "" {
		cfg.Output.Basename = "navigation"
	}
	if cfg.Watch.Debounce.Duration == 0 {
		cfg.Watch.Debounce.Duration = 500 * time.Millisecond
	}
	if cfg.Watch.MinInterval.Duration == 0 {
		cfg.Watch.MinInterval.Duration = 2 * time.Second
	}
}
