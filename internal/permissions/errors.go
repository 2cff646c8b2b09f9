package permissions

import (
	"errors"
	"fmt"
	"strings"
)

// PermissionError is returned when a host or secret is outside the
// configured policy. It does not reveal whether the resource exists.
type PermissionError struct {
	// Type is the check that failed: "network.blocked", "network.host_denied"
	// or "secrets.access".
	Type string

	// Resource is the denied host or secret key.
	Resource string

	Allowed []string
	Blocked []string
	Message string
}

func (e *PermissionError) Error() string {
	parts := []string{fmt.Sprintf("permission denied: %s", e.Type)}
	if e.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource: %s", e.Resource))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if len(e.Allowed) > 0 {
		parts = append(parts, fmt.Sprintf("allowed patterns: [%s]", strings.Join(e.Allowed, ", ")))
	} else if len(e.Blocked) == 0 {
		parts = append(parts, "allowed patterns: none")
	}
	if len(e.Blocked) > 0 {
		parts = append(parts, fmt.Sprintf("blocked patterns: [%s]", strings.Join(e.Blocked, ", ")))
	}
	return strings.Join(parts, "; ")
}

// IsUserVisible implements errors.UserVisibleError.
func (e *PermissionError) IsUserVisible() bool { return true }

// UserMessage implements errors.UserVisibleError.
func (e *PermissionError) UserMessage() string {
	return fmt.Sprintf("Access to %s is not permitted", e.Resource)
}

// Suggestion implements errors.UserVisibleError.
func (e *PermissionError) Suggestion() string {
	if strings.HasPrefix(e.Type, "network.") {
		return "Add the host to permissions.network.allowed_hosts in the config file"
	}
	return "Add the secret key to permissions.secrets.allowed in the config file"
}

// IsPermissionError reports whether err wraps a *PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
