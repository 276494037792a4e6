// Package config contains the loader and strongly typed model for ghctx.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	dotenv "github.com/llm-tools/ghctx/internal/env"
	"github.com/llm-tools/ghctx/internal/retry"
)

// DefaultConfigPath is the conventional config file name looked up in the
// working directory.
const DefaultConfigPath = "ghctx.yaml"

// Duration wraps time.Duration so YAML values can be written as "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts back to a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the top-level tool configuration. Every field has a working
// default; the YAML file and environment variables only override.
type Config struct {
	// EnvFiles lists .env files to load before env overrides are applied.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Extraction configures the structured-extraction service client.
	Extraction Extraction `yaml:"extraction,omitempty"`
	// Retry configures backoff for extraction calls.
	Retry Retry `yaml:"retry,omitempty"`
	// DiffHost is the host serving raw pull-request diffs.
	DiffHost string `yaml:"diffHost,omitempty"`
	// Defaults holds default command-line values.
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Extraction describes how to reach the extraction service.
type Extraction struct {
	// APIURL is the base URL of the extraction API.
	APIURL string `yaml:"apiURL,omitempty"`
	// APIKey authenticates against the extraction API. It is normally
	// supplied via FIRECRAWL_API_KEY rather than the YAML file.
	APIKey string `yaml:"apiKey,omitempty"`
	// Timeout bounds a single extraction request.
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Retry mirrors retry.Policy in YAML form.
type Retry struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int `yaml:"maxRetries,omitempty"`
	// BaseDelay is the delay before the first retry.
	BaseDelay Duration `yaml:"baseDelay,omitempty"`
	// MaxDelay caps the computed delay.
	MaxDelay Duration `yaml:"maxDelay,omitempty"`
	// Multiplier grows the delay per attempt.
	Multiplier float64 `yaml:"multiplier,omitempty"`
	// NoJitter disables the ±10% random noise on delays.
	NoJitter bool `yaml:"noJitter,omitempty"`
}

// Defaults holds fallback values for command-line flags.
type Defaults struct {
	// Depth is the default traversal depth.
	Depth int `yaml:"depth,omitempty"`
	// Types lists the reference kinds expanded by default; empty means all.
	Types []string `yaml:"types,omitempty"`
	// Format is the default output format (json or markdown).
	Format string `yaml:"format,omitempty"`
}

// overrides maps environment variables onto config fields.
type overrides struct {
	APIKey   string `env:"FIRECRAWL_API_KEY"`
	APIURL   string `env:"FIRECRAWL_API_URL"`
	DiffHost string `env:"GHCTX_DIFF_HOST"`
}

// Policy converts the retry section into a retry.Policy, falling back to the
// package defaults for unset fields.
func (r Retry) Policy() retry.Policy {
	policy := retry.DefaultPolicy()
	if r.MaxRetries > 0 {
		policy.MaxRetries = r.MaxRetries
	}
	if r.BaseDelay > 0 {
		policy.BaseDelay = r.BaseDelay.Std()
	}
	if r.MaxDelay > 0 {
		policy.MaxDelay = r.MaxDelay.Std()
	}
	if r.Multiplier > 0 {
		policy.Multiplier = r.Multiplier
	}
	policy.Jitter = !r.NoJitter
	return policy
}

// Load reads the configuration file at path, loads .env files and applies
// environment overrides. A missing file at the default path is not an error;
// an explicitly requested file must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Defaults: Defaults{Format: "json"},
	}

	explicit := path != "" && path != DefaultConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	dotVars, err := dotenv.LoadDotEnv(baseDir)
	if err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	fileVars, err := dotenv.LoadEnvFiles(baseDir, cfg.EnvFiles)
	if err != nil {
		return nil, err
	}
	vars := dotenv.Merge(dotVars, fileVars, dotenv.FromOS())

	var ov overrides
	if err := envparse.ParseWithOptions(&ov, envparse.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}
	if ov.APIKey != "" {
		cfg.Extraction.APIKey = ov.APIKey
	}
	if ov.APIURL != "" {
		cfg.Extraction.APIURL = ov.APIURL
	}
	if ov.DiffHost != "" {
		cfg.DiffHost = ov.DiffHost
	}

	return cfg, nil
}
