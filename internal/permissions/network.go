package permissions

import (
	"net"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultBlockedHosts are cloud metadata endpoints. They are blocked whenever
// a network policy is configured.
var DefaultBlockedHosts = []string{
	"169.254.169.254/32",
	"169.254.169.253/32",
	"metadata.google.internal",
}

// CheckNetwork returns nil when host (with or without a port) may be
// contacted under cfg.
func CheckNetwork(cfg *NetworkConfig, host string) error {
	if cfg == nil {
		return nil
	}
	hostname := stripPort(host)

	blocked := append(append([]string{}, DefaultBlockedHosts...), cfg.BlockedHosts...)
	for _, pattern := range blocked {
		if matchesHostPattern(hostname, pattern) {
			return &PermissionError{
				Type:     "network.blocked",
				Resource: hostname,
				Blocked:  blocked,
				Message:  "host is in blocked list",
			}
		}
	}

	if len(cfg.AllowedHosts) == 0 {
		return nil
	}
	for _, pattern := range cfg.AllowedHosts {
		if matchesHostPattern(hostname, pattern) {
			return nil
		}
	}
	return &PermissionError{
		Type:     "network.host_denied",
		Resource: hostname,
		Allowed:  cfg.AllowedHosts,
		Message:  "host not in allowed patterns",
	}
}

// HostPolicy adapts cfg to the host check hook of the HTTP client.
// It returns nil when cfg is nil.
func HostPolicy(cfg *NetworkConfig) func(host string) error {
	if cfg == nil {
		return nil
	}
	return func(host string) error {
		return CheckNetwork(cfg, host)
	}
}

// matchesHostPattern supports exact names, "*" wildcards and CIDR ranges.
// Names are never resolved, so a CIDR only matches literal IPs.
func matchesHostPattern(hostname, pattern string) bool {
	if strings.Contains(pattern, "/") {
		return matchesCIDR(hostname, pattern)
	}
	if strings.Contains(pattern, "*") {
		matched, err := doublestar.Match(hostGlob(pattern), hostname)
		return err == nil && matched
	}
	return strings.EqualFold(hostname, pattern)
}

// hostGlob turns "*.example.com" into "**.example.com" so the wildcard may
// span several labels.
func hostGlob(pattern string) string {
	if strings.Contains(pattern, "/") || !strings.Contains(pattern, "*") || strings.Contains(pattern, "**") {
		return pattern
	}
	return strings.ReplaceAll(pattern, "*", "**")
}

func matchesCIDR(hostname, cidr string) bool {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ipNet.Contains(ip)
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
