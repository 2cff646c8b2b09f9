// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/AvivoB/N8N-nodes/internal/permissions"
	"github.com/AvivoB/N8N-nodes/internal/tracing"
	nodeerrors "github.com/AvivoB/N8N-nodes/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete noderun configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	HTTP       HTTPConfig       `yaml:"http"`
	Pagination PaginationConfig `yaml:"pagination"`
	Tracing    tracing.Config   `yaml:"tracing"`

	// Permissions restricts reachable hosts and readable secrets. Unset means
	// unrestricted.
	Permissions permissions.Config `yaml:"permissions,omitempty"`

	// RateLimits holds an optional client-side limit per node type name.
	RateLimits map[string]RateLimitConfig `yaml:"rate_limits,omitempty"`

	// Credentials maps a credential type name (typesenseApi,
	// googleSearchConsoleOAuth2Api) to its field values. String values may be
	// "secret:<key>" or "${VAR}" references.
	Credentials map[string]map[string]any `yaml:"credentials,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is the output format (json, text).
	Format string `yaml:"format"`

	// AddSource adds source file and line information to logs.
	AddSource bool `yaml:"add_source"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	// Timeout bounds every HTTP exchange. It is the only timeout nodes observe.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent"`

	// TLSInsecure skips certificate verification.
	TLSInsecure bool `yaml:"tls_insecure,omitempty"`
}

// PaginationConfig bounds Search Console list pagination.
type PaginationConfig struct {
	// MaxPages stops pagination after this many pages. 0 means unbounded.
	MaxPages int `yaml:"max_pages"`
}

// RateLimitConfig is a token bucket applied to one node's transport.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. 0 disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the bucket size. Defaults to 1.
	Burst int `yaml:"burst"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "noderun/1.0",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Load loads configuration from an optional YAML file and then environment
// variables. Environment variables take precedence over the file. When
// configPath is empty the default location is read if it exists.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	path := configPath
	if path == "" {
		if p, err := ConfigPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, &nodeerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", path),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, &nodeerrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = defaults.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = defaults.HTTP.UserAgent
	}
	for name, rl := range c.RateLimits {
		if rl.Burst == 0 {
			rl.Burst = 1
			c.RateLimits[name] = rl
		}
	}
}

func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// loadFromEnv applies environment overrides.
func (c *Config) loadFromEnv() {
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("NODERUN_LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_SOURCE"); val != "" {
		c.Log.AddSource = val == "1" || strings.ToLower(val) == "true"
	}
	if val := os.Getenv("NODERUN_DEBUG"); val == "1" || strings.ToLower(val) == "true" {
		c.Log.Level = "debug"
		c.Log.AddSource = true
	}
	if val := os.Getenv("NODERUN_HTTP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if val := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); val != "" && len(c.Tracing.Exporters) == 0 {
		c.Tracing.Enabled = true
		c.Tracing.Exporters = []tracing.ExporterConfig{{
			Type:     tracing.ExporterOTLPHTTP,
			Endpoint: strings.TrimPrefix(strings.TrimPrefix(val, "http://"), "https://"),
			Insecure: strings.HasPrefix(val, "http://"),
		}}
	}
	if val := os.Getenv("NODERUN_MAX_PAGES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Pagination.MaxPages = n
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level must be one of [trace, debug, info, warn, error], got %q", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", c.Log.Format))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("http.timeout must be positive, got %v", c.HTTP.Timeout))
	}
	if c.Pagination.MaxPages < 0 {
		errs = append(errs, fmt.Sprintf("pagination.max_pages must be >= 0, got %d", c.Pagination.MaxPages))
	}
	if c.Tracing.Enabled {
		if err := c.Tracing.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := c.Permissions.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	for name, rl := range c.RateLimits {
		if rl.RequestsPerSecond < 0 {
			errs = append(errs, fmt.Sprintf("rate_limits.%s.requests_per_second must be >= 0", name))
		}
		if rl.Burst < 0 {
			errs = append(errs, fmt.Sprintf("rate_limits.%s.burst must be >= 0", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// Credential returns a copy of the configured fields for a credential type.
func (c *Config) Credential(name string) (map[string]any, bool) {
	fields, ok := c.Credentials[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out, true
}
