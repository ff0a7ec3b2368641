// Package config loads and validates pacer run configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/pacer"
)

// RunConfig is the top-level run configuration, loadable from YAML or
// JSON.
type RunConfig struct {
	// Name labels the run in output.
	Name string `yaml:"name" json:"name"`

	// Rate is the target admission rate in items per second.
	// Exactly one of Rate and RPM may be set; zero means unset.
	Rate float64 `yaml:"rate" json:"rate"`

	// RPM is the target admission rate in items per minute.
	RPM float64 `yaml:"rpm" json:"rpm"`

	// Tick is the scheduling interval as a duration string ("100ms").
	Tick string `yaml:"tick" json:"tick"`

	// MaxWorkers bounds concurrent batches; zero means logical CPU count.
	MaxWorkers int `yaml:"maxWorkers" json:"maxWorkers"`

	// MaxBurst caps accumulated admission credits; zero means uncapped.
	MaxBurst float64 `yaml:"maxBurst" json:"maxBurst"`

	// Workload describes where the items come from.
	Workload WorkloadConfig `yaml:"workload" json:"workload"`
}

// WorkloadConfig describes the item source for a run.
type WorkloadConfig struct {
	// File is the path to the workload file.
	File string `yaml:"file" json:"file"`

	// Format is "lines" (one item per line, default) or "json".
	Format string `yaml:"format" json:"format"`

	// Path is a gjson path selecting the item array in a JSON workload,
	// for example "requests.#.url". Empty means the document root.
	Path string `yaml:"path" json:"path"`
}

// Load reads, schema-validates, and semantically validates a run
// configuration file. The format is chosen by extension: .yaml/.yml or
// .json.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .json)", ext)
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}

	// yaml.v3 parses JSON too, so one decoder covers both formats.
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *RunConfig) applyDefaults() {
	if c.Name == "" {
		c.Name = "pacer run"
	}
	if c.Rate == 0 && c.RPM == 0 {
		c.Rate = 1.0
	}
	if c.Tick == "" {
		c.Tick = "100ms"
	}
	if c.Workload.Format == "" {
		c.Workload.Format = "lines"
	}
}

// Pacer converts the file configuration into a pacer.Config. Call it
// after Validate.
func (c *RunConfig) Pacer() pacer.Config {
	cfg := pacer.DefaultConfig()

	if c.RPM > 0 {
		cfg = cfg.WithRPM(c.RPM)
	} else {
		cfg = cfg.WithRate(c.Rate)
	}

	if tick, err := time.ParseDuration(c.Tick); err == nil {
		cfg = cfg.WithTick(tick)
	}
	if c.MaxWorkers > 0 {
		cfg = cfg.WithMaxWorkers(c.MaxWorkers)
	}
	if c.MaxBurst > 0 {
		cfg = cfg.WithMaxBurst(c.MaxBurst)
	}

	return cfg
}
