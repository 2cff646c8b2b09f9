package permissions

import (
	"github.com/bmatcuk/doublestar/v4"
)

// CheckSecret returns nil when the secret key may be read under cfg.
func CheckSecret(cfg *SecretsConfig, key string) error {
	if cfg == nil {
		return nil
	}
	if len(cfg.Allowed) == 0 {
		return &PermissionError{
			Type:     "secrets.access",
			Resource: key,
			Message:  "no secret permissions configured",
		}
	}
	for _, pattern := range cfg.Allowed {
		if matched, err := doublestar.Match(pattern, key); err == nil && matched {
			return nil
		}
	}
	return &PermissionError{
		Type:     "secrets.access",
		Resource: key,
		Allowed:  cfg.Allowed,
		Message:  "secret not in allowed patterns",
	}
}
