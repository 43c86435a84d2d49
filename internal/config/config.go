// Package config provides layered configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/exec-search/internal/logging"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SEARCH_AGENT_POOL_SIZE
	EnvPrefix = "SEARCH_AGENT_"
	// EnvConfigPath names a YAML file to load when --config is not given
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// Sentinel error kinds for this package
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config holds the settings of a search run.
// Precedence, lowest first: defaults, YAML file, SEARCH_AGENT_* environment.
type Config struct {
	LogLevel string `koanf:"log_level"`
	Verbose  bool   `koanf:"verbose"`

	Seed     uint64 `koanf:"seed"`
	PoolSize int    `koanf:"pool_size"`
	Offline  bool   `koanf:"offline"`

	MaxVetting       int `koanf:"max_vetting"`
	VetConcurrency   int `koanf:"vet_concurrency"`
	RetryAttempts    int `koanf:"retry_attempts"`
	RetryBaseDelayMS int `koanf:"retry_base_delay_ms"`
	PaceDelayMS      int `koanf:"pace_delay_ms"`
	CacheSize        int `koanf:"cache_size"`

	GeminiAPIKey string `koanf:"gemini_api_key"`
	DatabaseURL  string `koanf:"database_url"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel:         "warn",
		Seed:             42,
		PoolSize:         10,
		Offline:          true,
		MaxVetting:       5,
		VetConcurrency:   1,
		RetryAttempts:    3,
		RetryBaseDelayMS: 5000,
		PaceDelayMS:      5000,
		CacheSize:        128,
	}
}

// Load builds a Config from defaults, the YAML file at path (or the file named
// by SEARCH_AGENT_CONFIG when path is empty) and the environment.
// GEMINI_API_KEY and DATABASE_URL fill their fields when nothing else did.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("%w: failed to get current directory: %v", ErrLoadConfig, err)
			}
			path = filepath.Join(cwd, path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: failed to read environment: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	nonNegative := []struct {
		key   string
		value int
	}{
		{"pool_size", c.PoolSize},
		{"max_vetting", c.MaxVetting},
		{"retry_base_delay_ms", c.RetryBaseDelayMS},
		{"pace_delay_ms", c.PaceDelayMS},
		{"cache_size", c.CacheSize},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			return fmt.Errorf("%w: '%s' must be non-negative", ErrInvalidConfig, field.key)
		}
	}

	if c.RetryAttempts < 1 {
		return fmt.Errorf("%w: 'retry_attempts' must be at least 1", ErrInvalidConfig)
	}
	if c.VetConcurrency < 1 {
		return fmt.Errorf("%w: 'vet_concurrency' must be at least 1", ErrInvalidConfig)
	}
	if !c.Offline && c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: 'gemini_api_key' is required when offline is false", ErrInvalidConfig)
	}
	return nil
}

// RetryBaseDelay returns the base retry delay as a duration
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

// PaceDelay returns the delay between vetting calls as a duration
func (c *Config) PaceDelay() time.Duration {
	return time.Duration(c.PaceDelayMS) * time.Millisecond
}
