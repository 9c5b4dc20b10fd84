// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig       `toml:"server"`
	Log         LogConfig          `toml:"log"`
	Scanner     ScannerConfig      `toml:"scanner"`
	Userdata    UserdataConfig     `toml:"userdata"`
	Images      ImagesConfig       `toml:"images"`
	Collections []CollectionConfig `toml:"collections"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// SlogLevel maps the configured name to a slog level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

type ScannerConfig struct {
	Interval string `toml:"interval"` // periodic full rescan; empty disables
}

// RescanInterval returns the parsed interval, zero when rescans are disabled.
func (s ScannerConfig) RescanInterval() time.Duration {
	if s.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

type UserdataConfig struct {
	Database string `toml:"database"`
}

type ImagesConfig struct {
	CacheDir string `toml:"cache_dir"` // empty disables the resize cache
}

// CollectionConfig declares one library root to scan. An empty id gets a
// random one each start; set it explicitly to keep item ids stable across
// restarts.
type CollectionConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Kind string `toml:"kind"` // movies | shows
	Dir  string `toml:"dir"`
}

// Load reads, substitutes, parses and validates the configuration file.
// Validation problems come back as a *ConfigError.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadWithoutValidation parses the file but skips validation and missing
// environment variable checks. Used by `config show` style tooling that
// inspects configs outside their deployment environment.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := parse(path)
	return cfg, err
}

func load(path string, validate bool) (*Config, error) {
	cfg, missing, err := parse(path)
	if err != nil {
		return nil, err
	}
	if !validate {
		return cfg, nil
	}

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

func parse(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8085"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Userdata.Database == "" {
		cfg.Userdata.Database = "./data/medley.db"
	}

	return &cfg, missing, nil
}

// substituteEnvVars expands ${VAR}, ${VAR:-default} and ${VAR:?message}
// references. Unresolvable references are left in place and reported in the
// returned slice.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-": // default when unset or empty
			if value == "" {
				return arg
			}
			return value
		case "?": // required with custom message
			if value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
