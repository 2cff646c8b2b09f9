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

package tracing

import (
	"fmt"
	"time"
)

// Exporter types
const (
	ExporterConsole  = "console"
	ExporterOTLP     = "otlp"
	ExporterOTLPHTTP = "otlp-http"
	ExporterNone     = "none"
)

// Config holds tracing configuration.
type Config struct {
	// Enabled controls whether a tracer provider is installed.
	Enabled bool `yaml:"enabled"`

	// ServiceName identifies this process in traces.
	ServiceName string `yaml:"service_name,omitempty"`

	// ServiceVersion is set from the build version when empty.
	ServiceVersion string `yaml:"service_version,omitempty"`

	// SampleRate is the fraction of runs to record (0.0 - 1.0).
	SampleRate float64 `yaml:"sample_rate,omitempty"`

	// Exporters configures export destinations.
	Exporters []ExporterConfig `yaml:"exporters,omitempty"`

	// BatchTimeout is how long spans are buffered before export.
	BatchTimeout time.Duration `yaml:"batch_timeout,omitempty"`
}

// ExporterConfig defines one export destination.
type ExporterConfig struct {
	// Type is "console", "otlp" (gRPC), "otlp-http" or "none".
	Type string `yaml:"type"`

	// Endpoint is the OTLP receiver host:port.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Insecure disables TLS towards the receiver.
	Insecure bool `yaml:"insecure,omitempty"`

	// Headers are sent with every export, typically for authentication.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// DefaultConfig returns configuration with tracing disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		ServiceName:  "noderun",
		SampleRate:   1.0,
		BatchTimeout: 5 * time.Second,
	}
}

// Validate checks exporter types and the sample rate.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %v", c.SampleRate)
	}
	for i, e := range c.Exporters {
		switch e.Type {
		case ExporterConsole, ExporterNone:
		case ExporterOTLP, ExporterOTLPHTTP:
			if e.Endpoint == "" {
				return fmt.Errorf("tracing.exporters[%d]: endpoint is required for %s", i, e.Type)
			}
		default:
			return fmt.Errorf("tracing.exporters[%d]: unknown exporter type %q", i, e.Type)
		}
	}
	return nil
}
