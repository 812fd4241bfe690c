// Package config loads process settings from a TOML file and environment
// overrides.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsExpvar     = "expvar"
	MetricsPrometheus = "prometheus"
)

// ID strategies.
const (
	IDsUUID     = "uuid"
	IDsSequence = "sequence"
)

// Environment variables that override file settings.
const (
	EnvLogLevel = "POSTGRAPH_LOG_LEVEL"
	EnvMetrics  = "POSTGRAPH_METRICS"
	EnvIDs      = "POSTGRAPH_IDS"
	EnvSeed     = "POSTGRAPH_SEED"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Config is the complete process configuration.
type Config struct {
	Name    string
	Log     LogConfig
	Metrics MetricsConfig
	IDs     IDConfig
	Seed    SeedConfig
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level     string
	Timestamp bool
}

// MetricsConfig selects the operation metrics backend.
type MetricsConfig struct {
	Backend string
}

// IDConfig selects how generated entity ids are issued.
type IDConfig struct {
	Strategy string
	// Prefix is prepended to sequence ids.
	Prefix string
}

// SeedConfig controls the initial store contents.
type SeedConfig struct {
	Demo bool
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Name:    "postgraph",
		Log:     LogConfig{Level: "info", Timestamp: true},
		Metrics: MetricsConfig{Backend: MetricsNone},
		IDs:     IDConfig{Strategy: IDsUUID},
	}
}

type fileConfig struct {
	Name string `toml:"name"`
	Log  struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
	} `toml:"log"`
	Metrics struct {
		Backend string `toml:"backend"`
	} `toml:"metrics"`
	IDs struct {
		Strategy string `toml:"strategy"`
		Prefix   string `toml:"prefix"`
	} `toml:"ids"`
	Seed struct {
		Demo bool `toml:"demo"`
	} `toml:"seed"`
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = loadFile(path, cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg Config) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("metrics", "backend") {
		cfg.Metrics.Backend = strings.ToLower(strings.TrimSpace(raw.Metrics.Backend))
	}
	if meta.IsDefined("ids", "strategy") {
		cfg.IDs.Strategy = strings.ToLower(strings.TrimSpace(raw.IDs.Strategy))
	}
	if meta.IsDefined("ids", "prefix") {
		cfg.IDs.Prefix = raw.IDs.Prefix
	}
	if meta.IsDefined("seed", "demo") {
		cfg.Seed.Demo = raw.Seed.Demo
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment variables present in
// lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvMetrics); ok && strings.TrimSpace(v) != "" {
		c.Metrics.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvIDs); ok && strings.TrimSpace(v) != "" {
		c.IDs.Strategy = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvSeed); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvSeed, err)
		}
		c.Seed.Demo = seed
	}
	return nil
}

// Validate reports the first invalid setting in cfg.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("config missing name")
	}
	if !oneOf(cfg.Log.Level, logLevels...) {
		return fmt.Errorf("log.level %q must be one of %s", cfg.Log.Level, strings.Join(logLevels, ", "))
	}
	if !oneOf(cfg.Metrics.Backend, MetricsNone, MetricsExpvar, MetricsPrometheus) {
		return fmt.Errorf("metrics.backend %q must be one of none, expvar, prometheus", cfg.Metrics.Backend)
	}
	if !oneOf(cfg.IDs.Strategy, IDsUUID, IDsSequence) {
		return fmt.Errorf("ids.strategy %q must be one of uuid, sequence", cfg.IDs.Strategy)
	}
	if cfg.IDs.Prefix != "" && cfg.IDs.Strategy != IDsSequence {
		return fmt.Errorf("ids.prefix requires ids.strategy %q", IDsSequence)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
