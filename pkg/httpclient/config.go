package httpclient

import (
	"fmt"
	"log/slog"
	"time"
)

// Config configures the HTTP client.
type Config struct {
	// Timeout is the overall request timeout, covering connect, headers and body.
	// Default: 30s. Must be > 0.
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	// Required. Must be non-empty.
	UserAgent string

	// TLSInsecure disables certificate verification. Only meant for local
	// Typesense instances with self-signed certificates.
	TLSInsecure bool

	// Logger receives one record per HTTP exchange. Defaults to slog.Default().
	Logger *slog.Logger

	// CheckHost, when set, is called with the request host (host[:port])
	// before anything is sent. A non-nil error aborts the request.
	CheckHost func(host string) error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: "noderun/1.0",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}

	return nil
}
