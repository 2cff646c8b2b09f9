package permissions

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Config is the permissions section of the config file.
type Config struct {
	Network *NetworkConfig `yaml:"network,omitempty"`
	Secrets *SecretsConfig `yaml:"secrets,omitempty"`
}

// NetworkConfig limits outbound requests by destination host.
type NetworkConfig struct {
	// AllowedHosts, when non-empty, is the complete set of reachable hosts.
	AllowedHosts []string `yaml:"allowed_hosts,omitempty"`

	// BlockedHosts is checked before AllowedHosts and always wins.
	BlockedHosts []string `yaml:"blocked_hosts,omitempty"`
}

// SecretsConfig limits which secret keys credentials may reference.
// An empty Allowed list denies every secret.
type SecretsConfig struct {
	Allowed []string `yaml:"allowed"`
}

// Validate reports malformed glob patterns.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Secrets != nil {
		for _, p := range c.Secrets.Allowed {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("permissions.secrets.allowed: invalid pattern %q", p)
			}
		}
	}
	if c.Network != nil {
		for _, p := range append(append([]string{}, c.Network.AllowedHosts...), c.Network.BlockedHosts...) {
			if !doublestar.ValidatePattern(hostGlob(p)) {
				return fmt.Errorf("permissions.network: invalid host pattern %q", p)
			}
		}
	}
	return nil
}
